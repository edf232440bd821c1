package models

// MonthlyRevenue is the collected amount of one calendar month ("2026-04").
type MonthlyRevenue struct {
	Month  string `bson:"_id" json:"month"`
	Amount int64  `bson:"amount" json:"amount"`
	Orders int64  `bson:"orders" json:"orders"`
}

// DashboardStats feeds the admin dashboard charts.
type DashboardStats struct {
	Products           int64            `json:"products"`
	Blogs              int64            `json:"blogs"`
	Events             int64            `json:"events"`
	Customers          int64            `json:"customers"`
	EnquiriesByStatus  map[string]int64 `json:"enquiriesByStatus"`
	EnquiriesBySession map[string]int64 `json:"enquiriesBySession"`
	SlotsBooked        int64            `json:"slotsBooked"`
	SlotsOpen          int64            `json:"slotsOpen"`
	Orders             int64            `json:"orders"`
	Revenue            int64            `json:"revenue"`
	RevenueByMonth     []MonthlyRevenue `json:"revenueByMonth"`
}
