package core_test

import (
	"testing"

	"freight-office/internal/core"
)

func TestConsignmentDraft_Validate(t *testing.T) {
	valid := core.ConsignmentDraft{
		RecordDate:    "2024-06-10",
		ConsignorName: "Sharma Traders",
		ConsigneeName: "Verma Steel",
		Freight:       "15000.00",
	}

	tests := []struct {
		name    string
		mutate  func(*core.ConsignmentDraft)
		wantErr bool
	}{
		{"complete draft", func(d *core.ConsignmentDraft) {}, false},
		{"missing date", func(d *core.ConsignmentDraft) { d.RecordDate = "" }, true},
		{"missing consignor", func(d *core.ConsignmentDraft) { d.ConsignorName = "" }, true},
		{"missing consignee", func(d *core.ConsignmentDraft) { d.ConsigneeName = "" }, true},
		{"zero freight", func(d *core.ConsignmentDraft) { d.Freight = "0" }, true},
		{"garbage freight", func(d *core.ConsignmentDraft) { d.Freight = "fifteen thousand" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			err := d.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConsignmentDraft_Normalize(t *testing.T) {
	d := core.ConsignmentDraft{
		RecordDate:    " 2024-06-10 ",
		ConsignorName: "Sharma Traders\n",
		ConsigneeName: "  Verma Steel",
		TruckNo:       " MH31AB1234 ",
		Material:      "Steel Coils ",
	}
	d.Normalize()

	if d.RecordDate != "2024-06-10" || d.ConsignorName != "Sharma Traders" ||
		d.ConsigneeName != "Verma Steel" || d.TruckNo != "MH31AB1234" || d.Material != "Steel Coils" {
		t.Errorf("Normalize left whitespace: %+v", d)
	}
}
