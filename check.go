package main

// ShapeError means the payload is not shaped like a homework_statuses answer.
type ShapeError struct {
	Reason string
}

func (e *ShapeError) Error() string { return "unexpected response: " + e.Reason }

// EmptyError means the answer is well formed but has nothing to report.
type EmptyError struct{}

func (e *EmptyError) Error() string { return "unexpected response: no pending homework" }

// checkResponse validates resp in a fixed order and stops at the first
// problem found.
func checkResponse(resp any) error {
	m, ok := resp.(map[string]any)
	if !ok {
		return &ShapeError{Reason: "not a mapping"}
	}

	raw, ok := m["homeworks"]
	if !ok {
		return &ShapeError{Reason: "missing homeworks"}
	}

	homeworks, ok := raw.([]any)
	if !ok {
		return &ShapeError{Reason: "homeworks not a list"}
	}

	if len(homeworks) == 0 || isEmpty(homeworks[0]) {
		return &EmptyError{}
	}

	first, ok := homeworks[0].(map[string]any)
	if !ok {
		return &ShapeError{Reason: "missing status key"}
	}

	if _, ok := first["status"]; !ok {
		return &ShapeError{Reason: "missing status key"}
	}

	return nil
}

// isEmpty mirrors JSON falsiness for the values a homework slot can hold.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case string:
		return len(t) == 0
	case bool:
		return !t
	case float64:
		return t == 0
	}

	return false
}

// latestHomework returns homeworks[0]. Only call it after checkResponse.
func latestHomework(resp any) map[string]any {
	return resp.(map[string]any)["homeworks"].([]any)[0].(map[string]any)
}
