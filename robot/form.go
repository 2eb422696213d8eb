package robot

import (
	"fmt"
	"net/url"
)

// FormParamList renders a repeated parameter the way the webservice
// expects it in form-encoded bodies: a single value becomes "key[]=v",
// several values become "key[0]=v0", "key[1]=v1", and so on. The returned
// values can be merged into a larger url.Values before WithFormBody.
func FormParamList(key string, values []string) url.Values {
	out := make(url.Values, len(values))
	if len(values) == 1 {
		out.Set(key+"[]", values[0])
		return out
	}
	for i, v := range values {
		out.Set(fmt.Sprintf("%s[%d]", key, i), v)
	}
	return out
}
