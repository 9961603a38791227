package admin

import (
	"fmt"
	"strconv"
)

// Title resolve o texto de exibição: o campo de título na forma de string,
// ou o id quando o campo está vazio ou ausente.
func Title(record map[string]any, titleField string) string {
	if text := displayValue(record[titleField]); text != "" {
		return text
	}
	return displayValue(record["id"])
}

func displayValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case map[string]any:
		return displayValue(v["id"])
	}
	return fmt.Sprint(value)
}
