package domain

import (
	"encoding/json"
	"fmt"
)

// FlexString accepts a json string, number or bool and keeps its text
// form. Upstream records stringify ids, prices and trait values
// inconsistently across source revisions.
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = FlexString(str)
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		if t == float64(int64(t)) {
			*s = FlexString(fmt.Sprintf("%d", int64(t)))
		} else {
			*s = FlexString(fmt.Sprintf("%v", t))
		}
	default:
		*s = FlexString(fmt.Sprint(t))
	}
	return nil
}

func (s FlexString) String() string {
	return string(s)
}
