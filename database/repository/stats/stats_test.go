package statsRepo

import (
	"context"
	"testing"

	"resonance/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestSlotCounts(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("SplitsBookedAndOpen", func(mt *mtest.T) {
		repo := &mongoStatsRepo{slots: mt.Coll}
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: true}, {Key: "count", Value: int64(3)}},
			bson.D{{Key: "_id", Value: false}, {Key: "count", Value: int64(5)}},
		))

		booked, open, err := repo.SlotCounts(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), booked)
		assert.Equal(mt, int64(5), open)
	})
}

func TestEnquiryCounts(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("ByStatus", func(mt *mtest.T) {
		repo := &mongoStatsRepo{enquiries: mt.Coll}
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "pending"}, {Key: "count", Value: int64(4)}},
			bson.D{{Key: "_id", Value: "completed"}, {Key: "count", Value: int64(1)}},
		))

		counts, err := repo.EnquiryCounts(context.Background(), "status")
		require.NoError(mt, err)
		assert.Equal(mt, map[string]int64{"pending": 4, "completed": 1}, counts)
	})
}

func TestOrderTotalsEmpty(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("NoOrders", func(mt *mtest.T) {
		repo := &mongoStatsRepo{orders: mt.Coll}
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		orders, amount, err := repo.OrderTotals(context.Background(), []models.OrderStatus{models.OrderPaid})
		require.NoError(mt, err)
		assert.Zero(mt, orders)
		assert.Zero(mt, amount)
	})
}
