package grid

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

func ParseDirection(value string) Direction {
	if value == string(Asc) {
		return Asc
	}
	return Desc
}

type SortKey struct {
	Column string
	Dir    Direction
}

type Column struct {
	Key       string
	Label     string
	Orderable bool
	Numeric   bool
	Class     string
}

type Cell struct {
	Text   string
	Sub    string
	Class  string
	Href   string
	Image  string
	Strong bool
	// Order is the sort value of numeric columns.
	Order float64
}

type Row struct {
	Key   string
	Href  string
	Title string
	Cells []Cell
}

// Table is a rendered table the widget can decorate. Rows are in the order the
// presenter produced them; that order is the fallback for every sort.
type Table struct {
	ID          string
	Caption     string
	Columns     []Column
	Rows        []Row
	Placeholder string
	DefaultSort SortKey
	PageSize    int
}

func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}

func (t *Table) ColumnIndex(key string) int {
	for i, col := range t.Columns {
		if col.Key == key {
			return i
		}
	}
	return -1
}
