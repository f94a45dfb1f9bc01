package main

import (
	"encoding/csv"
	"fmt"
	"os"
)

// ledgerRow is the positional 15-column row shape of the spreadsheet
// backend. Column order matters; reserved columns stay blank.
func ledgerRow(l Load) []string {
	rpm := ""
	if l.HasRPM() {
		rpm = fmt.Sprintf("%.2f", l.RPMTotal)
	}
	return []string{
		l.Date,
		l.PickupZip,
		l.DeliveryZip,
		"", // loaded miles, reserved
		"", // empty miles, reserved
		formatNumber(l.TotalMiles),
		formatNumber(l.Rate),
		"", // RPM loaded, reserved
		rpm,
		l.Trailer,
		l.User,
		"", // broker, reserved
		l.Comment,
		l.User,
		l.UserID,
	}
}

// appendLedgerRow mirrors every persisted load into the local CSV
// ledger, one row per submission.
func appendLedgerRow(l Load) error {
	f, err := os.OpenFile(cfg.LedgerPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ledgerRow(l)); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
