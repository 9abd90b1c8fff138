package storage

import (
	"bytes"
	"context"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("get hit", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "cart"},
			{Key: "value", Value: `[]`},
		}))

		s := New(Options{Backend: BackendMongo, Mongo: mt.Coll})
		v, ok := s.Get(ctx, "cart")
		assert.True(mt, ok)
		assert.Equal(mt, "[]", v)
	})

	mt.Run("get miss", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		s := New(Options{Backend: BackendMongo, Mongo: mt.Coll})
		_, ok := s.Get(ctx, "cart")
		assert.False(mt, ok)
	})

	mt.Run("set upserts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
		))

		s := New(Options{Backend: BackendMongo, Mongo: mt.Coll})
		s.Set(ctx, "cart", "[]")

		started := mt.GetStartedEvent()
		if assert.NotNil(mt, started) {
			assert.Equal(mt, "update", started.CommandName)
		}
	})

	mt.Run("set failure is kept in memory", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
			Name:    "BadValue",
		}))

		var buf bytes.Buffer
		s := New(Options{Backend: BackendMongo, Mongo: mt.Coll, Logger: log.New(&buf, "", 0)})
		s.Set(ctx, "cart", "[1]")
		assert.Contains(mt, buf.String(), `mongo set "cart" failed`)

		// El get contra el mock falla y se resuelve desde memoria
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
			Name:    "BadValue",
		}))
		v, ok := s.Get(ctx, "cart")
		assert.True(mt, ok)
		assert.Equal(mt, "[1]", v)
	})
}
