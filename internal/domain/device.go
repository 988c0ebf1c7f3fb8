package domain

// DeviceKind distinguishes the two monitored device collections.
type DeviceKind string

const (
	DeviceKindCamera DeviceKind = "camera"
	DeviceKindAccess DeviceKind = "access"
)

// DeviceStatus is inferred from free-text status fields during import
// or toggled manually.
type DeviceStatus string

const (
	StatusOnline  DeviceStatus = "ONLINE"
	StatusOffline DeviceStatus = "OFFLINE"
)

// Device is a monitored camera or access point.
// Key is generated internally at import time; SourceID is the id column of
// the vendor export and may collide across files, so it is never used as
// identity.
type Device struct {
	Key         string       `json:"key"`
	SourceID    string       `json:"source_id"`
	Kind        DeviceKind   `json:"kind"`
	Name        string       `json:"name"`
	Location    string       `json:"location"`
	Module      string       `json:"module,omitempty"`
	Warehouse   string       `json:"warehouse"`
	Responsible string       `json:"responsible,omitempty"`
	Status      DeviceStatus `json:"status"`
	Ticket      string       `json:"ticket,omitempty"`
}

// ToJSON shapes the device for HTTP responses.
func (d *Device) ToJSON() map[string]any {
	m := map[string]any{
		"key":       d.Key,
		"source_id": d.SourceID,
		"kind":      string(d.Kind),
		"name":      d.Name,
		"location":  d.Location,
		"warehouse": d.Warehouse,
		"status":    string(d.Status),
	}
	if d.Module != "" {
		m["module"] = d.Module
	}
	if d.Responsible != "" {
		m["responsible"] = d.Responsible
	}
	if d.Ticket != "" {
		m["ticket"] = d.Ticket
	}
	return m
}
