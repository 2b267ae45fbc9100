package service

import (
	"testing"

	"github.com/Tribeoftech/atlas-files-manager/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestAccessDecisions(t *testing.T) {
	owner := bson.NewObjectID()
	other := bson.NewObjectID()

	tests := []struct {
		name       string
		requester  *bson.ObjectID
		isPublic   bool
		wantRead   bool
		wantMutate bool
	}{
		{
			name:       "owner reads and mutates private node",
			requester:  &owner,
			isPublic:   false,
			wantRead:   true,
			wantMutate: true,
		},
		{
			name:       "owner reads and mutates public node",
			requester:  &owner,
			isPublic:   true,
			wantRead:   true,
			wantMutate: true,
		},
		{
			name:       "other user reads public node but cannot mutate",
			requester:  &other,
			isPublic:   true,
			wantRead:   true,
			wantMutate: false,
		},
		{
			name:       "other user denied everything on private node",
			requester:  &other,
			isPublic:   false,
			wantRead:   false,
			wantMutate: false,
		},
		{
			name:       "anonymous reads public node but cannot mutate",
			requester:  nil,
			isPublic:   true,
			wantRead:   true,
			wantMutate: false,
		},
		{
			name:       "anonymous denied everything on private node",
			requester:  nil,
			isPublic:   false,
			wantRead:   false,
			wantMutate: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &domain.FileNode{OwnerID: owner, IsPublic: tt.isPublic}

			if got := CanRead(tt.requester, node); got != tt.wantRead {
				t.Errorf("CanRead = %v, want %v", got, tt.wantRead)
			}
			if got := CanMutate(tt.requester, node); got != tt.wantMutate {
				t.Errorf("CanMutate = %v, want %v", got, tt.wantMutate)
			}
		})
	}
}
