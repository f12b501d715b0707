package core

import (
	"errors"
	"strings"
)

// ConsignmentDraft is an AI-proposed lorry receipt awaiting user confirmation.
// Parties and trucks are referenced by name; the caller resolves them against
// the masters before submitting the draft as a ReceiptInput. Amounts are exact
// strings so the model cannot introduce float drift.
type ConsignmentDraft struct {
	RecordDate    string  `json:"lr_date" jsonschema_description:"Consignment date in YYYY-MM-DD format"`
	ConsignorName string  `json:"consignor_name" jsonschema_description:"Name of the sending party, exactly as listed"`
	ConsigneeName string  `json:"consignee_name" jsonschema_description:"Name of the receiving party, exactly as listed"`
	TruckNo       string  `json:"truck_no" jsonschema_description:"Vehicle registration number, empty if not mentioned"`
	FromLocation  string  `json:"from_location"`
	ToLocation    string  `json:"to_location"`
	Material      string  `json:"material" jsonschema_description:"Goods being transported"`
	Weight        string  `json:"weight" jsonschema_description:"Weight as an exact decimal string, e.g. \"12.500\""`
	Freight       string  `json:"freight" jsonschema_description:"Freight amount as an exact decimal string, e.g. \"15000.00\""`
	OtherExpenses string  `json:"other_expenses" jsonschema_description:"Other expenses as an exact decimal string, \"0\" if none"`
	Confidence    float64 `json:"confidence" jsonschema_description:"Confidence score between 0.0 and 1.0"`
	Reasoning     string  `json:"reasoning" jsonschema_description:"Short explanation of how the fields were extracted"`
}

// Normalize trims whitespace from every text field.
func (d *ConsignmentDraft) Normalize() {
	d.RecordDate = strings.TrimSpace(d.RecordDate)
	d.ConsignorName = strings.TrimSpace(d.ConsignorName)
	d.ConsigneeName = strings.TrimSpace(d.ConsigneeName)
	d.TruckNo = strings.TrimSpace(d.TruckNo)
	d.FromLocation = strings.TrimSpace(d.FromLocation)
	d.ToLocation = strings.TrimSpace(d.ToLocation)
	d.Material = strings.TrimSpace(d.Material)
}

// Validate checks the draft carries the minimum a lorry receipt needs.
func (d *ConsignmentDraft) Validate() error {
	if d.RecordDate == "" {
		return errors.New("draft is missing a consignment date")
	}
	if d.ConsignorName == "" || d.ConsigneeName == "" {
		return errors.New("draft must name both consignor and consignee")
	}
	if ParseAmount(d.Freight).IsZero() {
		return errors.New("draft is missing a freight amount")
	}
	return nil
}
