package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"

	"github.com/nodech/hsw-wallet-utils/internal/client"
	"github.com/nodech/hsw-wallet-utils/internal/errors"
	"github.com/nodech/hsw-wallet-utils/internal/jsonarr"
)

// Machine mode flag - when true, outputs JSON and suppresses human-friendly decorations
var machineMode bool

// MachineMode returns true if machine-readable output is enabled
func MachineMode() bool {
	return machineMode
}

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
// All --json output should use this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

// Error codes for machine-readable output.
const (
	ErrCodeConfigInvalid = "CONFIG_INVALID"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeHTTPStatus    = "HTTP_STATUS"
	ErrCodeTooLarge      = "RESPONSE_TOO_LARGE"
	ErrCodeRPCFailed     = "RPC_FAILED"
	ErrCodeWalletFailed  = "WALLET_FAILED"
	ErrCodePluginMissing = "PLUGIN_MISSING"
	ErrCodeMalformedDump = "MALFORMED_DUMP"
	ErrCodeDumpFailed    = "DUMP_FAILED"
	ErrCodeRenderFailed  = "RENDER_FAILED"
	ErrCodeCommandFailed = "COMMAND_FAILED"
	ErrCodeUnknown       = "UNKNOWN"
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	env := JSONEnvelope{
		Success: true,
		Data:    data,
	}
	return writeJSONEnvelope(w, env)
}

// WriteJSONError writes an error response to the writer.
func WriteJSONError(w io.Writer, code, message, suggestion string, details interface{}) error {
	env := JSONEnvelope{
		Success: false,
		Error: &JSONError{
			Code:       code,
			Message:    message,
			Suggestion: suggestion,
			Details:    details,
		},
	}
	return writeJSONEnvelope(w, env)
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	env := JSONEnvelope{
		Success: false,
		Error:   ErrorToJSON(err),
	}
	return writeJSONEnvelope(w, env)
}

// writeJSONEnvelope writes the envelope with consistent formatting.
func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts a Go error to a JSONError. Transport and codec
// failures are recognized anywhere in the chain, so a wrapped
// client.ErrUnauthorized still reports UNAUTHORIZED.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	out := &JSONError{Code: ErrCodeUnknown, Message: err.Error()}

	var hsErr *errors.Error
	if stderrors.As(err, &hsErr) {
		out.Code = mapErrorCode(hsErr.Code)
		out.Message = hsErr.Message
		out.Suggestion = hsErr.Suggestion
	}

	var statusErr *client.StatusError
	var syntaxErr *jsonarr.SyntaxError
	switch {
	case stderrors.Is(err, client.ErrUnauthorized):
		out.Code = ErrCodeUnauthorized
		out.Suggestion = "Check api_key in the config or HSD_API_KEY"
	case stderrors.Is(err, client.ErrNotFound):
		out.Code = ErrCodeNotFound
	case stderrors.Is(err, client.ErrTooLarge):
		out.Code = ErrCodeTooLarge
		out.Suggestion = "Raise limit in the config"
	case stderrors.As(err, &statusErr):
		out.Code = ErrCodeHTTPStatus
		out.Details = map[string]interface{}{"status": statusErr.Code}
	case stderrors.As(err, &syntaxErr):
		out.Code = ErrCodeMalformedDump
		out.Details = map[string]interface{}{"index": syntaxErr.Index, "offset": syntaxErr.Offset}
	case stderrors.Is(err, jsonarr.ErrFraming):
		out.Code = ErrCodeMalformedDump
	}

	return out
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(internalCode string) string {
	switch internalCode {
	case errors.ErrConfig:
		return ErrCodeConfigInvalid
	case errors.ErrRPC:
		return ErrCodeRPCFailed
	case errors.ErrWallet:
		return ErrCodeWalletFailed
	case errors.ErrDump:
		return ErrCodeDumpFailed
	case errors.ErrRender:
		return ErrCodeRenderFailed
	case errors.ErrExec:
		return ErrCodeCommandFailed
	}
	return ErrCodeUnknown
}
