package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"freight-office/internal/core"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

// ConsignmentResponse is the agent's answer to a natural-language consignment
// description: either a receipt draft or a request for clarification.
type ConsignmentResponse struct {
	IsClarificationRequest bool
	ClarificationMessage   string
	Draft                  *core.ConsignmentDraft
}

// Agent wraps the OpenAI client for consignment interpretation.
type Agent struct {
	client *openai.Client
}

// NewAgent constructs an Agent with the given API key.
func NewAgent(apiKey string) *Agent {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Agent{client: &client}
}

// interpretOutput is the structured-output schema the model must fill. Exactly
// one branch is meaningful, selected by is_clarification_request.
type interpretOutput struct {
	IsClarificationRequest bool                  `json:"is_clarification_request" jsonschema_description:"True when the input is too ambiguous to extract a consignment from"`
	ClarificationMessage   string                `json:"clarification_message" jsonschema_description:"Question to ask the user when clarification is needed, empty otherwise"`
	Draft                  core.ConsignmentDraft `json:"draft" jsonschema_description:"The extracted consignment, all fields empty when asking for clarification"`
}

// InterpretConsignment asks the model to extract a lorry receipt draft from a
// natural-language description. knownParties and knownTrucks are newline lists
// from the masters so the model reuses exact names instead of inventing them.
func (a *Agent) InterpretConsignment(ctx context.Context, text, knownParties, knownTrucks string) (*ConsignmentResponse, error) {
	prompt := fmt.Sprintf(`You are a back-office clerk at an Indian goods transport company.
Your goal is to read a consignment described in natural language and fill in a lorry receipt draft.
Rules:
1. Party names MUST be copied exactly from the known parties list below. If the described party is not on the list, ask for clarification.
2. Amounts must be exact decimal strings (e.g. "15000.00"). Never invent amounts that were not stated.
3. Dates are YYYY-MM-DD. If no date is given, leave lr_date empty.
4. Provide a confidence score (0.0-1.0).
5. If the input is not a consignment or is missing the consignor, consignee or freight, set is_clarification_request to true and ask one specific question.

Known parties:
%s

Known trucks:
%s

Input: %s`, knownParties, knownTrucks, text)

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
					Name:        "lorry_receipt_draft",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("A lorry receipt draft extracted from a consignment description"),
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

	var out interpretOutput
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("failed to parse completion: %w", err)
	}

	if out.IsClarificationRequest {
		return &ConsignmentResponse{
			IsClarificationRequest: true,
			ClarificationMessage:   out.ClarificationMessage,
		}, nil
	}

	draft := out.Draft
	draft.Normalize()
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("draft validation failed: %w", err)
	}
	return &ConsignmentResponse{Draft: &draft}, nil
}

func generateSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v interpretOutput
	return reflector.Reflect(v)
}
