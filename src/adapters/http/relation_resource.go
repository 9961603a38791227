package http

import (
	"net/http"

	"storeadmin/src/domain"
)

type relationRef struct {
	ID string `json:"id"`
}

func (er *entityResource) FindRelated(w http.ResponseWriter, r *http.Request) {
	relation, ok := er.collection.Schema().Relation(r.PathValue("relation"))
	if !ok || relation.Kind != domain.RelationToMany {
		writeError(er.server.logger, w, r, domain.ErrNotFound)
		return
	}

	target, ok := er.server.registry.Get(relation.Target)
	if !ok {
		writeError(er.server.logger, w, r, domain.ErrNotFound)
		return
	}

	query, err := parseFindManyQuery(r.URL.RawQuery)
	if err != nil {
		writeError(er.server.logger, w, r, err)
		return
	}

	args, err := query.Args(target.Schema())
	if err != nil {
		writeError(er.server.logger, w, r, err)
		return
	}

	records, err := er.server.registry.FindRelated(r.Context(), er.collection, r.PathValue("id"), relation.Name, args)
	if err != nil {
		writeError(er.server.logger, w, r, err)
		return
	}

	writeJSON(er.server.logger, w, http.StatusOK, records)
}

func (er *entityResource) ConnectRelated(w http.ResponseWriter, r *http.Request) {
	er.changeRelated(w, r, func(change *domain.RelationChange, ids []string) {
		change.Connect = ids
	})
}

func (er *entityResource) SetRelated(w http.ResponseWriter, r *http.Request) {
	er.changeRelated(w, r, func(change *domain.RelationChange, ids []string) {
		change.Set = ids
		change.Replace = true
	})
}

func (er *entityResource) DisconnectRelated(w http.ResponseWriter, r *http.Request) {
	er.changeRelated(w, r, func(change *domain.RelationChange, ids []string) {
		change.Disconnect = ids
	})
}

func (er *entityResource) changeRelated(w http.ResponseWriter, r *http.Request, apply func(*domain.RelationChange, []string)) {
	ids, err := decodeRefs(w, r)
	if err != nil {
		writeError(er.server.logger, w, r, err)
		return
	}

	change := domain.RelationChange{Relation: domain.Relation{Name: r.PathValue("relation")}}
	apply(&change, ids)

	if err := er.server.registry.ChangeRelated(r.Context(), er.collection, r.PathValue("id"), change); err != nil {
		writeError(er.server.logger, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeRefs lê o corpo [{"id": "..."}].
func decodeRefs(w http.ResponseWriter, r *http.Request) ([]string, error) {
	var refs []relationRef
	if err := decodeJSON(w, r, &refs); err != nil {
		return nil, domain.NewValidationError("request body must be an array of {\"id\": string}")
	}

	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref.ID == "" {
			return nil, domain.NewValidationError("id must be a non-empty string")
		}
		ids = append(ids, ref.ID)
	}
	return ids, nil
}
