package booking

// AuthorizationRequest carries what a client may send when asking to pay for
// a service. There is no amount: the price always comes from the catalog.
type AuthorizationRequest struct {
	ServiceID     string
	CustomerName  string
	CustomerEmail string
}

// Authorization is the gateway handle returned to the client.
type Authorization struct {
	ID           string
	ClientSecret string
	ServiceID    string
	Amount       int64
	Currency     string
}

// ConfirmRequest settles an appointment with a previously issued
// authorization.
type ConfirmRequest struct {
	AppointmentID   string
	AuthorizationID string
	CustomerName    string
	CustomerEmail   string
}
