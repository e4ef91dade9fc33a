package graphql

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	graphql "github.com/graph-gophers/graphql-go"

	"github.com/jhoicas/commodities-api/internal/interfaces/errcode"
)

// request cuerpo estándar de una petición GraphQL sobre HTTP.
type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type errorBody struct {
	Errors []errorItem `json:"errors"`
}

type errorItem struct {
	Message    string                 `json:"message"`
	Extensions map[string]interface{} `json:"extensions"`
}

// Handler ejecuta POST /graphql. El header Authorization viaja en el contexto y cada
// operación raíz lo valida contra su política; los errores van en errors[] con status 200.
func Handler(schema *graphql.Schema) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req request
		if err := json.Unmarshal(c.Body(), &req); err != nil || strings.TrimSpace(req.Query) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(errorBody{Errors: []errorItem{{
				Message:    "cuerpo inválido: se esperaba {query, operationName?, variables?}",
				Extensions: map[string]interface{}{"code": errcode.BadUserInput},
			}}})
		}

		ctx := WithAuthorization(c.UserContext(), c.Get(fiber.HeaderAuthorization))
		resp := schema.Exec(ctx, req.Query, req.OperationName, req.Variables)
		return c.JSON(resp)
	}
}
