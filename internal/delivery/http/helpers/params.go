package helpers

import (
	"fmt"
	"net/http"
	"strconv"
)

// PathInt64 parses the named path value as a positive int64.
func PathInt64(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}
