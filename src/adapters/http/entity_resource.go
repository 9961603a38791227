package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"storeadmin/src/domain"
	"storeadmin/src/services/crud"
)

// entityResource expõe uma collection nas rotas REST da entidade.
type entityResource struct {
	server     *Server
	collection crud.Collection
}

func (er *entityResource) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(w, r)
	if err != nil {
		writeError(er.server.logger, w, r, err)
		return
	}

	input, err := er.collection.Schema().ParseCreateInput(body)
	if err != nil {
		writeError(er.server.logger, w, r, err)
		return
	}

	record, err := er.collection.Create(r.Context(), input)
	if err != nil {
		writeError(er.server.logger, w, r, err)
		return
	}

	writeJSON(er.server.logger, w, http.StatusCreated, record)
}

func (er *entityResource) FindMany(w http.ResponseWriter, r *http.Request) {
	query, err := parseFindManyQuery(r.URL.RawQuery)
	if err != nil {
		writeError(er.server.logger, w, r, err)
		return
	}

	args, err := query.Args(er.collection.Schema())
	if err != nil {
		writeError(er.server.logger, w, r, err)
		return
	}

	records, err := er.collection.FindMany(r.Context(), args)
	if err != nil {
		writeError(er.server.logger, w, r, err)
		return
	}

	writeJSON(er.server.logger, w, http.StatusOK, records)
}

func (er *entityResource) FindOne(w http.ResponseWriter, r *http.Request) {
	record, err := er.collection.FindOne(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(er.server.logger, w, r, err)
		return
	}

	writeJSON(er.server.logger, w, http.StatusOK, record)
}

func (er *entityResource) Update(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(w, r)
	if err != nil {
		writeError(er.server.logger, w, r, err)
		return
	}

	input, err := er.collection.Schema().ParseUpdateInput(body)
	if err != nil {
		writeError(er.server.logger, w, r, err)
		return
	}

	record, err := er.collection.Update(r.Context(), r.PathValue("id"), input)
	if err != nil {
		writeError(er.server.logger, w, r, err)
		return
	}

	writeJSON(er.server.logger, w, http.StatusOK, record)
}

func (er *entityResource) Delete(w http.ResponseWriter, r *http.Request) {
	record, err := er.collection.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(er.server.logger, w, r, err)
		return
	}

	writeJSON(er.server.logger, w, http.StatusOK, record)
}

const maxBodyBytes = 1 << 20

// decodeJSON lê um único valor JSON do corpo, limitado a maxBodyBytes; sobra após o valor é erro.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after the JSON value")
	}
	return nil
}

func decodeObject(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, error) {
	var body map[string]json.RawMessage
	if err := decodeJSON(w, r, &body); err != nil || body == nil {
		return nil, domain.NewValidationError("request body must be a JSON object")
	}
	return body, nil
}
