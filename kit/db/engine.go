package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"reflect"
	"time"
)

// The engine executes the fixed query set used by the repositories against a
// key/value table layer. MemoryClient and BoltClient only differ in the
// tables they hand to it.

const (
	tableServices              = "services"
	tableAppointments          = "appointments"
	tablePayments              = "payments"
	tablePaymentsByAppointment = "payments_by_appointment"
	tableUsers                 = "users"
)

var allTables = []string{tableServices, tableAppointments, tablePayments, tablePaymentsByAppointment, tableUsers}

const (
	qServiceGet    = "SELECT id, title, price, currency, description FROM services WHERE id = ? AND deleted = 0"
	qServiceUpsert = "INSERT INTO services (id, title, price, currency, description) VALUES (?, ?, ?, ?, ?) ON DUPLICATE KEY UPDATE title=?, price=?, currency=?, description=?, deleted=0"
	qServiceDelete = "UPDATE services SET deleted = 1 WHERE id = ?"

	qAppointmentInsert   = "INSERT INTO appointments (id, service_id, doctor_id, client_id, slot, payment_status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)"
	qAppointmentGet      = "SELECT id, service_id, doctor_id, client_id, slot, payment_status, transaction_id, paid_at, created_at FROM appointments WHERE id = ?"
	qAppointmentMarkPaid = "UPDATE appointments SET payment_status = 'paid', transaction_id = ?, paid_at = ? WHERE id = ? AND payment_status = 'unpaid'"

	qPaymentInsert           = "INSERT INTO payments (payment_id, appointment_id, service_id, service_title, amount, currency, authorization_id, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"
	qPaymentGetByAppointment = "SELECT payment_id, appointment_id, service_id, service_title, amount, currency, authorization_id, status, created_at FROM payments WHERE appointment_id = ?"

	qUserUpsert      = "INSERT INTO users (id, email, name, role) VALUES (?, ?, ?, ?) ON DUPLICATE KEY UPDATE email=?, name=?, role=?"
	qUserGet         = "SELECT id, email, name, role FROM users WHERE id = ?"
	qUserCountByRole = "SELECT COUNT(*) FROM users WHERE role = ?"
	qUserUpdateRole  = "UPDATE users SET role = ? WHERE id = ? AND role = ?"
)

type tables interface {
	get(table, key string) []byte
	put(table, key string, v []byte) error
	forEach(table string, fn func(k, v []byte) error) error
}

type serviceRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	Deleted     bool   `json:"deleted"`
}

type appointmentRow struct {
	ID            string    `json:"id"`
	ServiceID     string    `json:"service_id"`
	DoctorID      string    `json:"doctor_id"`
	ClientID      string    `json:"client_id"`
	Slot          time.Time `json:"slot"`
	PaymentStatus string    `json:"payment_status"`
	TransactionID string    `json:"transaction_id"`
	PaidAt        time.Time `json:"paid_at"`
	CreatedAt     time.Time `json:"created_at"`
}

type paymentRow struct {
	ID              string    `json:"payment_id"`
	AppointmentID   string    `json:"appointment_id"`
	ServiceID       string    `json:"service_id"`
	ServiceTitle    string    `json:"service_title"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
	AuthorizationID string    `json:"authorization_id"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type userRow struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

var errInvalidArgs = errors.New("invalid args")

func execQuery(t tables, query string, args []any) error {
	switch query {
	case qServiceUpsert:
		if len(args) != 9 {
			return errors.Join(ErrInternal, errInvalidArgs)
		}
		r := serviceRow{
			ID:          argString(args[0]),
			Title:       argString(args[5]),
			Price:       argString(args[6]),
			Currency:    argString(args[7]),
			Description: argString(args[8]),
		}
		return putRow(t, tableServices, r.ID, r)
	case qServiceDelete:
		if len(args) != 1 {
			return errors.Join(ErrInternal, errInvalidArgs)
		}
		var r serviceRow
		if err := getRow(t, tableServices, argString(args[0]), &r); err != nil {
			return err
		}
		r.Deleted = true
		return putRow(t, tableServices, r.ID, r)
	case qAppointmentInsert:
		if len(args) != 7 {
			return errors.Join(ErrInternal, errInvalidArgs)
		}
		r := appointmentRow{
			ID:            argString(args[0]),
			ServiceID:     argString(args[1]),
			DoctorID:      argString(args[2]),
			ClientID:      argString(args[3]),
			Slot:          argTime(args[4]),
			PaymentStatus: argString(args[5]),
			CreatedAt:     argTime(args[6]),
		}
		if t.get(tableAppointments, r.ID) != nil {
			return ErrConflict
		}
		return putRow(t, tableAppointments, r.ID, r)
	case qAppointmentMarkPaid:
		if len(args) != 3 {
			return errors.Join(ErrInternal, errInvalidArgs)
		}
		var r appointmentRow
		if err := getRow(t, tableAppointments, argString(args[2]), &r); err != nil {
			return err
		}
		if r.PaymentStatus != "unpaid" {
			return ErrConflict
		}
		r.PaymentStatus = "paid"
		r.TransactionID = argString(args[0])
		r.PaidAt = argTime(args[1])
		return putRow(t, tableAppointments, r.ID, r)
	case qPaymentInsert:
		if len(args) != 9 {
			return errors.Join(ErrInternal, errInvalidArgs)
		}
		amount, _ := args[4].(int64)
		r := paymentRow{
			ID:              argString(args[0]),
			AppointmentID:   argString(args[1]),
			ServiceID:       argString(args[2]),
			ServiceTitle:    argString(args[3]),
			Amount:          amount,
			Currency:        argString(args[5]),
			AuthorizationID: argString(args[6]),
			Status:          argString(args[7]),
			CreatedAt:       argTime(args[8]),
		}
		// payments_by_appointment is a unique index: one record per appointment.
		if t.get(tablePayments, r.ID) != nil || t.get(tablePaymentsByAppointment, r.AppointmentID) != nil {
			return ErrConflict
		}
		if err := putRow(t, tablePayments, r.ID, r); err != nil {
			return err
		}
		return putRow(t, tablePaymentsByAppointment, r.AppointmentID, r.ID)
	case qUserUpsert:
		if len(args) != 7 {
			return errors.Join(ErrInternal, errInvalidArgs)
		}
		r := userRow{
			ID:    argString(args[0]),
			Email: argString(args[4]),
			Name:  argString(args[5]),
			Role:  argString(args[6]),
		}
		return putRow(t, tableUsers, r.ID, r)
	case qUserUpdateRole:
		if len(args) != 3 {
			return errors.Join(ErrInternal, errInvalidArgs)
		}
		var r userRow
		if err := getRow(t, tableUsers, argString(args[1]), &r); err != nil {
			return err
		}
		if r.Role != argString(args[2]) {
			return ErrConflict
		}
		r.Role = argString(args[0])
		return putRow(t, tableUsers, r.ID, r)
	default:
		log.Printf("layer=client component=db method=Exec err=unsupported query query=%q", query)
		return errors.Join(ErrInternal, errors.New("unsupported query"))
	}
}

func queryRow(t tables, query string, args []any) *row {
	switch query {
	case qServiceGet:
		if len(args) != 1 {
			return &row{err: errors.Join(ErrInternal, errInvalidArgs)}
		}
		var r serviceRow
		if err := getRow(t, tableServices, argString(args[0]), &r); err != nil {
			return &row{err: err}
		}
		if r.Deleted {
			return &row{err: ErrNotFound}
		}
		return &row{vals: []any{r.ID, r.Title, r.Price, r.Currency, r.Description}}
	case qAppointmentGet:
		if len(args) != 1 {
			return &row{err: errors.Join(ErrInternal, errInvalidArgs)}
		}
		var r appointmentRow
		if err := getRow(t, tableAppointments, argString(args[0]), &r); err != nil {
			return &row{err: err}
		}
		return &row{vals: []any{r.ID, r.ServiceID, r.DoctorID, r.ClientID, r.Slot, r.PaymentStatus, r.TransactionID, r.PaidAt, r.CreatedAt}}
	case qPaymentGetByAppointment:
		if len(args) != 1 {
			return &row{err: errors.Join(ErrInternal, errInvalidArgs)}
		}
		var id string
		if err := getRow(t, tablePaymentsByAppointment, argString(args[0]), &id); err != nil {
			return &row{err: err}
		}
		var r paymentRow
		if err := getRow(t, tablePayments, id, &r); err != nil {
			return &row{err: err}
		}
		return &row{vals: []any{r.ID, r.AppointmentID, r.ServiceID, r.ServiceTitle, r.Amount, r.Currency, r.AuthorizationID, r.Status, r.CreatedAt}}
	case qUserGet:
		if len(args) != 1 {
			return &row{err: errors.Join(ErrInternal, errInvalidArgs)}
		}
		var r userRow
		if err := getRow(t, tableUsers, argString(args[0]), &r); err != nil {
			return &row{err: err}
		}
		return &row{vals: []any{r.ID, r.Email, r.Name, r.Role}}
	case qUserCountByRole:
		if len(args) != 1 {
			return &row{err: errors.Join(ErrInternal, errInvalidArgs)}
		}
		role := argString(args[0])
		var n int64
		err := t.forEach(tableUsers, func(_, v []byte) error {
			var r userRow
			if err := json.Unmarshal(v, &r); err != nil {
				return errors.Join(ErrInternal, err)
			}
			if r.Role == role {
				n++
			}
			return nil
		})
		if err != nil {
			return &row{err: err}
		}
		return &row{vals: []any{n}}
	default:
		log.Printf("layer=client component=db method=QueryRow err=unsupported query query=%q", query)
		return &row{err: errors.Join(ErrInternal, errors.New("unsupported query"))}
	}
}

func getRow(t tables, table, key string, dst any) error {
	b := t.get(table, key)
	if b == nil {
		return ErrNotFound
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

func putRow(t tables, table, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}
	if err := t.put(table, key, b); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

// argString accepts string and named string types such as status enums.
func argString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return fmt.Sprint(v)
}

func argTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case *time.Time:
		if t != nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

type row struct {
	vals []any
	err  error
}

func (r *row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.vals) {
		return errors.Join(ErrInternal, errors.New("scan arg mismatch"))
	}
	for i := range dest {
		switch d := dest[i].(type) {
		case *string:
			v, _ := r.vals[i].(string)
			*d = v
		case *int64:
			v, _ := r.vals[i].(int64)
			*d = v
		case *time.Time:
			v, _ := r.vals[i].(time.Time)
			*d = v
		default:
			dv := reflect.ValueOf(dest[i])
			if dv.Kind() != reflect.Ptr || dv.IsNil() {
				return errors.Join(ErrInternal, errors.New("unsupported scan type"))
			}
			ev := dv.Elem()
			switch ev.Kind() {
			case reflect.String:
				if s, ok := r.vals[i].(string); ok {
					ev.SetString(s)
					continue
				}
			case reflect.Int64:
				if n, ok := r.vals[i].(int64); ok {
					ev.SetInt(n)
					continue
				}
			}
			return errors.Join(ErrInternal, errors.New("unsupported scan type"))
		}
	}
	return nil
}
