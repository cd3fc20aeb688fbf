package store

import (
	"errors"
	"strings"
	"testing"

	"github.com/dkomarov/go-auth-keeper/models"
)

func TestBuildFindUserByFieldsQuery(t *testing.T) {
	tests := []struct {
		name      string
		fields    map[string]string
		wantErr   error
		wantArgs  int
		wantParts []string
	}{
		{
			name:      "single field",
			fields:    map[string]string{"username": "alice"},
			wantArgs:  1,
			wantParts: []string{"FROM users", "username = $1"},
		},
		{
			name:      "two fields",
			fields:    map[string]string{"username": "alice", "email": "alice@example.com"},
			wantArgs:  2,
			wantParts: []string{"FROM users", "username", "email"},
		},
		{
			name:    "unknown column rejected",
			fields:  map[string]string{"secret": "x"},
			wantErr: ErrBuildingSQLQuery,
		},
		{
			name:    "empty field set rejected",
			fields:  map[string]string{},
			wantErr: ErrBuildingSQLQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildFindUserByFieldsQuery(tt.fields)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("expected %d args, got %d", tt.wantArgs, len(args))
			}
			for _, part := range tt.wantParts {
				if !strings.Contains(query, part) {
					t.Errorf("query %q missing %q", query, part)
				}
			}
		})
	}
}

func TestBuildListIdentitiesForUsersQuery(t *testing.T) {
	query, args, err := buildListIdentitiesForUsersQuery([]int64{1, 2, 3}, models.IdentityAccessToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(query, "FROM identities") {
		t.Errorf("query %q missing identities table", query)
	}
	if !strings.Contains(query, "IN ($") {
		t.Errorf("query %q missing IN clause placeholders", query)
	}
	// three user ids plus the identity type
	if len(args) != 4 {
		t.Errorf("expected 4 args, got %d", len(args))
	}
}

func TestBuildListIdentitiesForUsersQuery_NoIDs(t *testing.T) {
	_, _, err := buildListIdentitiesForUsersQuery(nil, models.IdentityAccessToken)
	if !errors.Is(err, ErrBuildingSQLQuery) {
		t.Fatalf("expected ErrBuildingSQLQuery, got %v", err)
	}
}
