package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain"
)

var validate = validator.New()

// bindJSON decodifica el cuerpo en out aceptando claves PascalCase, camelCase o snake_case,
// y luego aplica las reglas `validate` del DTO.
func bindJSON(c *fiber.Ctx, out any) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return domain.Invalid("cuerpo vacío")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return domain.Invalid("cuerpo inválido: %v", err)
	}
	if _, ok := raw.(map[string]any); !ok {
		return domain.Invalid("el cuerpo debe ser un objeto JSON")
	}
	canon, err := json.Marshal(canonicalize(raw))
	if err != nil {
		return domain.Invalid("cuerpo inválido: %v", err)
	}
	if err := json.Unmarshal(canon, out); err != nil {
		return domain.Invalid("cuerpo inválido: %v", err)
	}
	return validateStruct(out)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return domain.Invalid("%v", err)
	}
	msgs := make([]string, 0, len(ves))
	for _, fe := range ves {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		if fe.Param() != "" {
			msgs = append(msgs, field+": "+fe.Tag()+"="+fe.Param())
		} else {
			msgs = append(msgs, field+": "+fe.Tag())
		}
	}
	return domain.Invalid("%s", strings.Join(msgs, "; "))
}

// canonicalize reescribe recursivamente las claves de objetos a PascalCase.
// Si un objeto trae la misma clave en dos formatos, gana la escrita en PascalCase.
func canonicalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if ck := canonicalKey(k); ck != k {
				if _, exists := out[ck]; !exists {
					out[ck] = canonicalize(val)
				}
			}
		}
		for k, val := range t {
			if canonicalKey(k) == k {
				out[k] = canonicalize(val)
			}
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = canonicalize(val)
		}
		return out
	default:
		return v
	}
}

// canonicalKey: "product_id", "productId" y "ProductId" pasan a "ProductID".
func canonicalKey(k string) string {
	parts := strings.FieldsFunc(k, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	if len(parts) == 0 {
		return k
	}
	var b strings.Builder
	for _, p := range parts {
		r, size := utf8.DecodeRuneInString(p)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(p[size:])
	}
	s := b.String()
	if strings.HasSuffix(s, "Id") && len(s) > 2 {
		s = s[:len(s)-2] + "ID"
	}
	return s
}

// pathID lee un id numérico positivo de la ruta.
func pathID(c *fiber.Ctx, name string) (int64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("%s inválido: %q", name, raw)
	}
	return id, nil
}

// queryValue devuelve el primer parámetro no vacío entre los nombres dados.
func queryValue(c *fiber.Ctx, names ...string) (string, string) {
	for _, n := range names {
		if v := strings.TrimSpace(c.Query(n)); v != "" {
			return n, v
		}
	}
	return "", ""
}

func queryInt64(c *fiber.Ctx, names ...string) (*int64, error) {
	name, raw := queryValue(c, names...)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, domain.Invalid("%s inválido: %q", name, raw)
	}
	return &id, nil
}

func queryBool(c *fiber.Ctx, names ...string) (bool, error) {
	name, raw := queryValue(c, names...)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, domain.Invalid("%s inválido: %q", name, raw)
	}
	return b, nil
}

// queryTime acepta RFC3339 o fecha simple (2006-01-02).
func queryTime(c *fiber.Ctx, names ...string) (*time.Time, error) {
	name, raw := queryValue(c, names...)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, domain.Invalid("%s inválido: %q", name, raw)
}

func queryPage(c *fiber.Ctx) (dto.PageRequest, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, domain.Invalid("paginación inválida: %v", err)
	}
	page.DefaultPage()
	return page, nil
}
