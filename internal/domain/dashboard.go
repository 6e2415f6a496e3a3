package domain

type DashboardStats struct {
	TodaySales   int64 `json:"todaySales"`
	WeekSales    int64 `json:"weekSales"`
	MonthSales   int64 `json:"monthSales"`
	TotalRevenue int64 `json:"totalRevenue"`
	TotalOrders  int64 `json:"total_orders"`
	NewCustomers int64 `json:"new_customers"`
}

type MonthlyRevenue struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

type PopularItem struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	TotalOrders int64    `json:"total_orders"`
}

type RecentOrder struct {
	ID       uint64      `json:"id"`
	Customer string      `json:"customer"`
	Total    int64       `json:"total"`
	Status   OrderStatus `json:"status"`
	Date     string      `json:"date"`
	Time     string      `json:"time"`
}

type DashboardOverview struct {
	Stats   DashboardStats   `json:"stats"`
	Revenue []MonthlyRevenue `json:"revenue"`
	Popular []PopularItem    `json:"popular"`
	Recent  []RecentOrder    `json:"recent"`
}
