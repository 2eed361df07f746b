package sap

import (
	"encoding/xml"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/boekwinkel/order_service/internal/domain/models"
)

func TestBuildIDoc(t *testing.T) {
	order := &models.Order{
		ID:          7,
		CustomerID:  1,
		OrderNumber: "ORD20240315093000",
		OrderDate:   time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC),
		TotalAmount: 94.98,
		Customer:    &models.Customer{ID: 1, Name: "Jan Jansen"},
		Lines: []models.OrderLine{
			{ID: 1, BookTitle: "Clean Code", ISBN: "978-0132350884", Quantity: 1, UnitPrice: 39.99},
			{ID: 2, BookTitle: "Design Patterns", ISBN: "978-0201633610", Quantity: 1, UnitPrice: 54.99},
		},
	}

	raw, err := buildIDoc(order)
	require.NoError(t, err)

	require.Contains(t, raw, "<ORDERS05>")
	require.Contains(t, raw, "<BELNR>ORD20240315093000</BELNR>")
	require.Contains(t, raw, "<DATUM>20240315</DATUM>")
	require.Contains(t, raw, "<NAME1>Jan Jansen</NAME1>")
	require.Contains(t, raw, "<IDTNR>978-0132350884</IDTNR>")

	var doc idoc
	require.NoError(t, xml.Unmarshal([]byte(raw), &doc))
	require.Len(t, doc.IDoc.Items, 2)
	require.Equal(t, "ORDERS05", doc.IDoc.Control.IDocType)
	require.Equal(t, "94.98", doc.IDoc.Header.Amount)
}

func TestIDocNumberFormat(t *testing.T) {
	require.Equal(t, "IDOC0000000042", idocNumber(42))
}
