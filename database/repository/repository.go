package repository

import (
	"context"

	contentRepo "resonance/database/repository/content"
	enquiryRepo "resonance/database/repository/enquiry"
	orderRepo "resonance/database/repository/order"
	slotRepo "resonance/database/repository/slot"
	statsRepo "resonance/database/repository/stats"
	userRepo "resonance/database/repository/user"

	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the repository interfaces and constructors.
type (
	SlotRepository    = slotRepo.SlotRepository
	SlotQuery         = slotRepo.SlotQuery
	EnquiryRepository = enquiryRepo.EnquiryRepository
	OrderRepository   = orderRepo.OrderRepository
	ProductRepository = contentRepo.ProductRepository
	BlogRepository    = contentRepo.BlogRepository
	EventRepository   = contentRepo.EventRepository
	UserRepository    = userRepo.UserRepository
	StatsRepository   = statsRepo.StatsRepository
)

var (
	NewMongoSlotRepo    = slotRepo.NewMongoSlotRepo
	NewMongoEnquiryRepo = enquiryRepo.NewMongoEnquiryRepo
	NewMongoOrderRepo   = orderRepo.NewMongoOrderRepo
	NewMongoProductRepo = contentRepo.NewMongoProductRepo
	NewMongoBlogRepo    = contentRepo.NewMongoBlogRepo
	NewMongoEventRepo   = contentRepo.NewMongoEventRepo
	NewMongoUserRepo    = userRepo.NewMongoUserRepo
	NewMongoStatsRepo   = statsRepo.NewMongoStatsRepo
)

// Repositories is the full set of collections the service works with.
type Repositories struct {
	Slots     SlotRepository
	Enquiries EnquiryRepository
	Orders    OrderRepository
	Products  ProductRepository
	Blogs     BlogRepository
	Events    EventRepository
	Users     UserRepository
	Stats     StatsRepository
}

func NewRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Slots:     NewMongoSlotRepo(db),
		Enquiries: NewMongoEnquiryRepo(db),
		Orders:    NewMongoOrderRepo(db),
		Products:  NewMongoProductRepo(db),
		Blogs:     NewMongoBlogRepo(db),
		Events:    NewMongoEventRepo(db),
		Users:     NewMongoUserRepo(db),
		Stats:     NewMongoStatsRepo(db),
	}
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// EnsureIndexes creates the indexes of every collection, stopping at the first failure.
func (r *Repositories) EnsureIndexes(ctx context.Context) error {
	for _, ix := range []indexer{r.Slots, r.Enquiries, r.Orders, r.Products, r.Blogs, r.Events, r.Users} {
		if err := ix.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
