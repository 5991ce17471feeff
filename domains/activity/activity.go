package activity

import (
	"context"
	"fmt"
	"strings"

	"github.com/9rajputshivam/daytime-window-check/pkg/window"
)

// ExecuteRequest is the payload Journey Builder posts when a contact reaches
// the activity. Only the fields the evaluator needs are decoded; everything
// else in the payload is ignored.
type ExecuteRequest struct {
	ActivityObjectID     string           `json:"activityObjectID"`
	JourneyID            string           `json:"journeyId"`
	ActivityID           string           `json:"activityId"`
	DefinitionInstanceID string           `json:"definitionInstanceId"`
	ActivityInstanceID   string           `json:"activityInstanceId"`
	KeyValue             string           `json:"keyValue"`
	InArguments          []map[string]any `json:"inArguments"`
}

// Argument merges inArguments in order (later entries win) and returns the
// named value as a trimmed string.
func (r ExecuteRequest) Argument(name string) string {
	var value string
	for _, args := range r.InArguments {
		for k, v := range args {
			if strings.EqualFold(k, name) {
				value = fmt.Sprintf("%v", v)
			}
		}
	}
	return strings.TrimSpace(value)
}

// Country returns the recipient country this invocation should be evaluated
// against.
func (r ExecuteRequest) Country() string {
	return r.Argument("country")
}

// LifecycleRequest covers the save/validate/publish/stop hooks. The platform
// only requires a success response, so the payload is mostly informational.
type LifecycleRequest struct {
	ActivityObjectID     string `json:"activityObjectID"`
	DefinitionInstanceID string `json:"definitionInstanceId"`
}

type IActivityUsecase interface {
	// Execute is total: it always returns a well-formed verdict, converting
	// every internal failure into the fail-closed verdict.
	Execute(ctx context.Context, request ExecuteRequest) window.Verdict
	Save(ctx context.Context, request LifecycleRequest) error
	Validate(ctx context.Context, request LifecycleRequest) error
	Publish(ctx context.Context, request LifecycleRequest) error
	Stop(ctx context.Context, request LifecycleRequest) error
}
