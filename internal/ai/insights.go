// Package ai generates structured business insights from inventory and
// sales figures using the OpenAI Responses API with strict JSON schema
// output.
package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

// InsightItem is one observation about the business.
type InsightItem struct {
	Area            string `json:"area" jsonschema_description:"The business area this insight concerns: 'sales', 'inventory', or 'purchasing'"`
	Severity        string `json:"severity" jsonschema_description:"'info', 'warning', or 'critical'"`
	Message         string `json:"message" jsonschema_description:"A concise, factual observation grounded in the provided figures"`
	SuggestedAction string `json:"suggested_action" jsonschema_description:"A concrete next step the operator could take"`
}

// Insights is the structured result returned by the model.
type Insights struct {
	Summary string        `json:"summary" jsonschema_description:"A two-to-three sentence overall assessment of the business figures"`
	Items   []InsightItem `json:"items" jsonschema_description:"Individual observations, most important first"`
}

type InsightsService interface {
	Analyze(ctx context.Context, report string) (*Insights, error)
}

// InsightsAgent calls OpenAI to interpret a plain-text business report.
type InsightsAgent struct {
	client *openai.Client
}

// NewInsightsAgent builds an agent. An empty apiKey is allowed at
// construction time; Analyze will fail with a clear error instead.
func NewInsightsAgent(apiKey string) *InsightsAgent {
	if apiKey == "" {
		return &InsightsAgent{}
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &InsightsAgent{client: &client}
}

// Analyze sends the report to the model and parses the schema-constrained
// response. The report is expected to be the plain-text snapshot produced
// by the application layer (stock KPIs, overview, low-stock list).
func (a *InsightsAgent) Analyze(ctx context.Context, report string) (*Insights, error) {
	if a.client == nil {
		return nil, fmt.Errorf("insights are disabled: OPENAI_API_KEY is not configured")
	}

	prompt := fmt.Sprintf(`You are an inventory and billing analyst.
Interpret the business figures below and produce actionable insights.
Rules:
1. Base every observation strictly on the provided figures; never invent numbers.
2. Flag products at or below their stock threshold as inventory warnings.
3. Keep messages short and specific.

Figures:
%s`, report)

	schemaJSON, err := json.Marshal(generateSchema())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "business_insights",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("Structured insights over inventory and billing figures"),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var insights Insights
	if err := json.Unmarshal([]byte(content), &insights); err != nil {
		return nil, fmt.Errorf("failed to parse completion: %w", err)
	}
	return &insights, nil
}

func generateSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v Insights
	return reflector.Reflect(v)
}
