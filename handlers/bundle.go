package handlers

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Slots     *SlotHandler
	Enquiries *EnquiryHandler
	Cart      *CartHandler
	Payments  *PaymentHandler
	Content   *ContentHandler
	Auth      *AuthHandler
	Admin     *AdminHandler
	Stats     *StatsHandler
	Health    *HealthHandler
}
