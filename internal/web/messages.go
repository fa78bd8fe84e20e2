package web

const (
	msgLoadErrorTitle = "Erreur de chargement des données"
	msgNoTeams        = "Aucune équipe trouvée"
	msgAllDivisions   = "Toutes les divisions"
	msgTeamNotFound   = "Équipe introuvable"
)

func loadErrorMessage(view string) string {
	switch view {
	case viewTeams:
		return "Impossible de charger les statistiques des équipes. Veuillez réessayer plus tard."
	}
	return "Impossible de charger les statistiques. Veuillez réessayer plus tard."
}

func rowTitle(name string) string {
	return "Cliquez pour voir les détails de " + name
}
