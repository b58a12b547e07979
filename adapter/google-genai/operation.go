package googlegenai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/RichardKnop/ragproxy"
	"github.com/RichardKnop/ragproxy/pkg/fields"
)

// PollOperation performs one status check. Operation names coming from the
// upload endpoint use the /upload/operations/ form, which the operations API
// does not serve; rewrite before fetching.
func (a *Adapter) PollOperation(ctx context.Context, operation ragproxy.RawValue) (ragproxy.RawValue, error) {
	name := fields.String(fields.Resolve(operation, "name"))
	if name == "" {
		return nil, fmt.Errorf("operation has no name")
	}

	name = strings.Replace(name, "/upload/operations/", "/operations/", 1)

	return a.doJSON(ctx, http.MethodGet, a.baseURL+"/"+name, nil)
}
