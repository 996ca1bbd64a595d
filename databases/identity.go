package databases

// go generate: mockery --name IdentityDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chikitsa-health/chikitsa-api/models"
)

const identityName = "identities"

// IdentityDatabase contains the methods to use with the identities database
type IdentityDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Identity, error)
	InsertOne(ctx context.Context, identity models.Identity) error
}

type identityDatabase struct {
	db DatabaseHelper
}

// NewIdentityDatabase initializes a new instance of identity database with the provided db connection
func NewIdentityDatabase(db DatabaseHelper) IdentityDatabase {
	return &identityDatabase{
		db: db,
	}
}

func (c *identityDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Identity, error) {
	identity := &models.Identity{}
	err := c.db.Collection(identityName).FindOne(ctx, filter, opts...).Decode(&identity)
	if err != nil {
		return nil, err
	}
	return identity, nil
}

func (c *identityDatabase) InsertOne(ctx context.Context, identity models.Identity) error {
	_, err := c.db.Collection(identityName).InsertOne(ctx, identity)
	return err
}
