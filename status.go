package main

import "fmt"

var homeworkVerdicts = map[string]string{
	"approved":  "Работа проверена: ревьюеру всё понравилось. Ура!",
	"reviewing": "Работа взята на проверку ревьюером.",
	"rejected":  "Работа проверена: у ревьюера есть замечания.",
}

type UnexpectedStatusError struct {
	Field string
	Value any
}

func (e *UnexpectedStatusError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("unexpected homework: %s is missing", e.Field)
	}

	return fmt.Sprintf("unexpected homework %s: %v", e.Field, e.Value)
}

func parseStatus(homework map[string]any) (string, error) {
	name, ok := homework["homework_name"].(string)
	if !ok {
		return "", &UnexpectedStatusError{Field: "homework_name", Value: homework["homework_name"]}
	}

	status, _ := homework["status"].(string)
	verdict, ok := homeworkVerdicts[status]
	if !ok {
		return "", &UnexpectedStatusError{Field: "status", Value: homework["status"]}
	}

	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", name, verdict), nil
}
