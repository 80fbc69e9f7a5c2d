// Package sheet reads and writes the XLSX files used by the back office.
package sheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/phenrril/kiddocorner/internal/domain"
)

const (
	ordersSheet = "Orders"
	stockSheet  = "Stock"
)

var orderHeader = []any{
	"Order", "Date", "Status", "Customer", "Phone", "Address", "Product", "Color", "Size",
	"Quantity", "Unit price", "Shipping", "Total", "Payment", "Transaction",
}

func WriteOrders(w io.Writer, orders []domain.OrderDetails) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(ordersSheet, "A1", &orderHeader); err != nil {
		return err
	}
	for i, o := range orders {
		payment := ""
		if o.PaymentMethod != nil {
			payment = o.PaymentMethod.Name
		}
		row := []any{
			o.OrderNumber, o.CreatedAt.Format("2006-01-02 15:04"), string(o.Status),
			o.CustomerName, o.CustomerPhone, o.CustomerAddress,
			o.ProductName, o.ColorName, o.SizeName,
			o.Quantity, o.UnitPrice, o.ShippingCost, o.TotalAmount, payment, o.TransactionID,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(ordersSheet, cell, &row); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(ordersSheet, "A", "O", 16)
	return f.Write(w)
}

var stockHeader = []any{"Variation ID", "Color", "Size", "SKU", "Price", "Sale price", "Stock"}

// WriteVariationStock lists one row per variation. The file can be edited and
// read back with ReadVariationStock.
func WriteVariationStock(w io.Writer, attrs domain.ProductAttributes) error {
	colors := map[uuid.UUID]string{}
	for _, c := range attrs.Colors {
		colors[c.ID] = c.Name
	}
	sizes := map[uuid.UUID]string{}
	for _, s := range attrs.Sizes {
		sizes[s.ID] = s.Name
	}
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", stockSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(stockSheet, "A1", &stockHeader); err != nil {
		return err
	}
	for i, v := range attrs.Variations {
		row := []any{v.ID.String(), "", "", "", v.Price, "", v.Stock}
		if v.ColorID != nil {
			row[1] = colors[*v.ColorID]
		}
		if v.SizeID != nil {
			row[2] = sizes[*v.SizeID]
		}
		if v.SKU != nil {
			row[3] = *v.SKU
		}
		if v.SalePrice != nil {
			row[5] = *v.SalePrice
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(stockSheet, cell, &row); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(stockSheet, "A", "A", 38)
	return f.Write(w)
}

// ReadVariationStock returns variation id -> stock from the first sheet.
// Rows without a parsable id are skipped; a bad stock cell is an error.
func ReadVariationStock(r io.Reader) (map[uuid.UUID]int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.Invalid("not a spreadsheet: %v", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.Invalid("spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	out := map[uuid.UUID]int{}
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		id, err := uuid.Parse(strings.TrimSpace(row[0]))
		if err != nil {
			continue
		}
		if len(row) < 7 {
			return nil, domain.Invalid("row %d has no stock", i+1)
		}
		n, err := strconv.Atoi(strings.TrimSpace(row[6]))
		if err != nil || n < 0 {
			return nil, domain.Invalid("row %d: stock %q is not a whole number", i+1, row[6])
		}
		out[id] = n
	}
	return out, nil
}

// Filename builds a download name such as "orders-20260102.xlsx".
func Filename(kind, stamp string) string {
	return fmt.Sprintf("%s-%s.xlsx", kind, stamp)
}
