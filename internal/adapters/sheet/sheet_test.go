package sheet

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/phenrril/kiddocorner/internal/domain"
)

func TestVariationStockRoundTrip(t *testing.T) {
	red := domain.Color{ID: uuid.New(), Name: "Red"}
	small := domain.Size{ID: uuid.New(), Name: "S"}
	sku := "RS"
	attrs := domain.ProductAttributes{
		Colors: []domain.Color{red},
		Sizes:  []domain.Size{small},
		Variations: []domain.Variation{
			{ID: uuid.New(), ColorID: &red.ID, SizeID: &small.ID, SKU: &sku, Price: 25, Stock: 4},
			{ID: uuid.New(), ColorID: &red.ID, Price: 25, Stock: 0},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteVariationStock(&buf, attrs))

	stock, err := ReadVariationStock(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]int{attrs.Variations[0].ID: 4, attrs.Variations[1].ID: 0}, stock)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(stockSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Red", v)
	v, err = f.GetCellValue(stockSheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, "RS", v)
}

func TestReadVariationStockRejectsBadCells(t *testing.T) {
	f := excelize.NewFile()
	id := uuid.NewString()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Variation ID", "", "", "", "", "", "Stock"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{id, "", "", "", 1, "", "lots"}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := ReadVariationStock(bytes.NewReader(buf.Bytes()))
	assert.True(t, domain.IsValidation(err))

	_, err = ReadVariationStock(bytes.NewReader([]byte("plain text")))
	assert.True(t, domain.IsValidation(err))
}

func TestWriteOrders(t *testing.T) {
	orders := []domain.OrderDetails{{
		Order: domain.Order{
			OrderNumber: "ORD-1234560042", Status: domain.OrderStatusPending, Quantity: 2,
			UnitPrice: 25, ShippingCost: 80, TotalAmount: 130, CreatedAt: time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC),
		},
		ProductName:   "Romper",
		ColorName:     "Red",
		PaymentMethod: &domain.PaymentMethod{Name: "bKash"},
	}}
	var buf bytes.Buffer
	require.NoError(t, WriteOrders(&buf, orders))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(ordersSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ORD-1234560042", rows[1][0])
	assert.Equal(t, "2026-01-02 09:30", rows[1][1])
	assert.Equal(t, "bKash", rows[1][13])
	assert.Equal(t, "orders-20260102.xlsx", Filename("orders", "20260102"))
}
