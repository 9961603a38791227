package gql

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
)

type request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// Handler atende POST (corpo JSON) e GET (?query=&variables=&operationName=).
// Mutations só via POST.
type Handler struct {
	logger *slog.Logger
	schema graphql.Schema
}

func NewHandler(logger *slog.Logger, schema graphql.Schema) *Handler {
	return &Handler{logger: logger, schema: schema}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request

	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()
		req.Query = query.Get("query")
		req.OperationName = query.Get("operationName")
		if variables := query.Get("variables"); variables != "" {
			if err := json.Unmarshal([]byte(variables), &req.Variables); err != nil {
				h.writeResult(w, http.StatusBadRequest, errorResult("variables must be a JSON object"))
				return
			}
		}
	default:
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			h.writeResult(w, http.StatusBadRequest, errorResult("request body must be a JSON object"))
			return
		}
	}

	if req.Query == "" {
		h.writeResult(w, http.StatusBadRequest, errorResult("query must not be empty"))
		return
	}

	if r.Method == http.MethodGet && isMutation(req.Query, req.OperationName) {
		w.Header().Set("Allow", http.MethodPost)
		h.writeResult(w, http.StatusMethodNotAllowed, errorResult("mutations must be sent with POST"))
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        r.Context(),
	})

	if result.HasErrors() {
		h.logger.Debug("GraphQL request finished with errors", "errors", len(result.Errors))
	}

	h.writeResult(w, http.StatusOK, result)
}

func (h *Handler) writeResult(w http.ResponseWriter, status int, result *graphql.Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error("Failed to write GraphQL response", "error", err)
	}
}

func errorResult(message string) *graphql.Result {
	return &graphql.Result{
		Errors: []gqlerrors.FormattedError{{Message: message}},
	}
}

// isMutation diz se a operação que seria executada é uma mutation.
// Documento inválido devolve false e o erro de parse sai pelo graphql.Do.
func isMutation(query string, operationName string) bool {
	document, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return false
	}

	for _, definition := range document.Definitions {
		operation, ok := definition.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if operationName != "" && (operation.Name == nil || operation.Name.Value != operationName) {
			continue
		}
		if operation.Operation == ast.OperationTypeMutation {
			return true
		}
	}
	return false
}
