package main

import (
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigateway"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type StatsStackProps struct {
	awscdk.StackProps
}

func envOr(key, fallback string) *string {
	if v := os.Getenv(key); v != "" {
		return jsii.String(v)
	}
	return jsii.String(fallback)
}

func NewStatsStack(scope constructs.Construct, id string, props *StatsStackProps) awscdk.Stack {
	var stackProps awscdk.StackProps
	if props != nil {
		stackProps = props.StackProps
	}

	stack := awscdk.NewStack(scope, &id, &stackProps)

	lambdaFn := awslambda.NewFunction(stack, jsii.String("StatsApi"), &awslambda.FunctionProps{
		Runtime:    awslambda.Runtime_PROVIDED_AL2023(),
		Handler:    jsii.String("bootstrap"),
		Code:       awslambda.Code_FromAsset(jsii.String("../"), nil),
		MemorySize: jsii.Number(256),
		Timeout:    awscdk.Duration_Seconds(jsii.Number(15)),
		Environment: &map[string]*string{
			"APP":                 jsii.String("prod"),
			"LOG_FORMAT":          jsii.String("json"),
			"DATA_URL":            envOr("DATA_URL", ""),
			"DATA_CACHE_TTL":      envOr("DATA_CACHE_TTL", "5m"),
			"INCLUDE_TOURNAMENTS": envOr("INCLUDE_TOURNAMENTS", "true"),
			"DASHBOARD_DIVISIONS": envOr("DASHBOARD_DIVISIONS", ""),
			"TEAM_DETAIL_URL":     envOr("TEAM_DETAIL_URL", "/teams/%s"),
		},
	})

	api := awsapigateway.NewLambdaRestApi(stack, jsii.String("StatsApiGateway"), &awsapigateway.LambdaRestApiProps{
		Handler: lambdaFn,
	})

	awscdk.NewCfnOutput(stack, jsii.String("ApiUrl"), &awscdk.CfnOutputProps{Value: api.Url()})

	return stack
}

func main() {
	app := awscdk.NewApp(nil)
	NewStatsStack(app, "LheqStatsStack", &StatsStackProps{})
	app.Synth(nil)
}
