package observe

import (
	"time"

	"github.com/casualjim/vkwave/client"
	"github.com/go-openapi/strfmt"
	"github.com/goccy/go-json"
	"github.com/tidwall/sjson"
)

// Record is the JSON form of a finished request.
type Record struct {
	RequestID     string          `json:"request_id"`
	Method        string          `json:"method"`
	RequestState  string          `json:"request_state"`
	ResultState   string          `json:"result_state"`
	Error         string          `json:"error,omitempty"`
	ExceptionData map[string]any  `json:"exception_data,omitempty"`
	Timestamp     strfmt.DateTime `json:"timestamp"`
}

// NewRecord captures the current state of rc.
func NewRecord(rc *client.RequestContext) Record {
	res := rc.Result()
	rec := Record{
		RequestID:    rc.ID(),
		Method:       string(rc.MethodName()),
		RequestState: rc.State().String(),
		ResultState:  res.State().String(),
		Timestamp:    strfmt.DateTime(time.Now().UTC()),
	}
	if res.State().IsException() {
		if err := res.Exception(); err != nil {
			rec.Error = err.Error()
		}
		rec.ExceptionData = res.ExceptionData()
	}
	return rec
}

// Encode marshals rc as a Record. With includeData the transport data of a
// successful request is embedded verbatim under "data".
func Encode(rc *client.RequestContext, includeData bool) ([]byte, error) {
	b, err := json.Marshal(NewRecord(rc))
	if err != nil {
		return nil, err
	}
	res := rc.Result()
	if includeData && res.State() == client.Success && res.Data().Raw != "" {
		return sjson.SetRawBytes(b, "data", []byte(res.Data().Raw))
	}
	return b, nil
}
