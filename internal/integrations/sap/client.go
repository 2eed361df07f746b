package sap

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/boekwinkel/order_service/internal/domain/models"
)

const (
	StatusSuccess = "53"
	StatusFailure = "51"
)

const requestLatency = 500 * time.Millisecond

type Response struct {
	Success    bool
	Status     string
	Message    string
	IDocNumber string
}

// Client simulates the SAP ERP collaborator: it renders the order as an
// ORDERS05 iDoc and reports the processing status code SAP would return.
type Client struct {
	log *slog.Logger
}

func NewClient(log *slog.Logger) *Client {
	return &Client{log: log}
}

func (c *Client) SendOrder(ctx context.Context, order *models.Order) (Response, error) {
	const op = "sap.client.SendOrder"

	doc, err := buildIDoc(order)
	if err != nil {
		return failure(err.Error()), fmt.Errorf("%s: build idoc: %w", op, err)
	}

	c.log.Info("sap idoc generated", slog.String("order_number", order.OrderNumber))
	c.log.Debug("sap idoc payload", slog.String("xml", doc))

	select {
	case <-ctx.Done():
		return failure(ctx.Err().Error()), ctx.Err()
	case <-time.After(requestLatency):
	}

	// The remote side occasionally refuses an iDoc.
	if rand.Intn(100) < 10 {
		return Response{
			Success:    false,
			Status:     StatusFailure,
			Message:    "iDoc verwerking mislukt",
			IDocNumber: idocNumber(order.ID),
		}, nil
	}

	return Response{
		Success:    true,
		Status:     StatusSuccess,
		Message:    "iDoc succesvol verwerkt",
		IDocNumber: idocNumber(order.ID),
	}, nil
}

func failure(msg string) Response {
	return Response{Success: false, Status: StatusFailure, Message: msg}
}

func idocNumber(orderID int64) string {
	return fmt.Sprintf("IDOC%010d", orderID)
}

type idoc struct {
	XMLName xml.Name    `xml:"ORDERS05"`
	IDoc    idocContent `xml:"IDOC"`
}

type idocContent struct {
	Begin   string      `xml:"BEGIN,attr"`
	Control idocControl `xml:"EDI_DC40"`
	Header  idocHeader  `xml:"E1EDK01"`
	Partner idocPartner `xml:"E1EDKA1"`
	Items   []idocItem  `xml:"E1EDP01"`
}

type idocControl struct {
	Segment  string `xml:"SEGMENT,attr"`
	IDocType string `xml:"IDOCTYP"`
	MsgType  string `xml:"MESTYP"`
	Sender   string `xml:"SNDPRN"`
	Receiver string `xml:"RCVPRN"`
}

type idocHeader struct {
	Segment     string `xml:"SEGMENT,attr"`
	OrderNumber string `xml:"BELNR"`
	Date        string `xml:"DATUM"`
	Amount      string `xml:"WKURS"`
}

type idocPartner struct {
	Segment string `xml:"SEGMENT,attr"`
	Role    string `xml:"PARVW"`
	Partner string `xml:"PARTN"`
	Name    string `xml:"NAME1"`
}

type idocItem struct {
	Segment  string `xml:"SEGMENT,attr"`
	Position string `xml:"POSEX"`
	Quantity string `xml:"MENGE"`
	Unit     string `xml:"MENEE"`
	Plant    string `xml:"WERKS"`
	ISBN     string `xml:"IDTNR"`
	Title    string `xml:"KTEXT"`
	Price    string `xml:"BETRG"`
}

func buildIDoc(order *models.Order) (string, error) {
	customerName := ""
	if order.Customer != nil {
		customerName = order.Customer.Name
	}

	doc := idoc{
		IDoc: idocContent{
			Begin: "1",
			Control: idocControl{
				Segment:  "1",
				IDocType: "ORDERS05",
				MsgType:  "ORDERS",
				Sender:   "BOEKWINKEL",
				Receiver: "SAPR3",
			},
			Header: idocHeader{
				Segment:     "1",
				OrderNumber: order.OrderNumber,
				Date:        order.OrderDate.Format("20060102"),
				Amount:      fmt.Sprintf("%.2f", order.TotalAmount),
			},
			Partner: idocPartner{
				Segment: "1",
				Role:    "AG",
				Partner: fmt.Sprintf("%d", order.CustomerID),
				Name:    customerName,
			},
		},
	}

	for _, line := range order.Lines {
		doc.IDoc.Items = append(doc.IDoc.Items, idocItem{
			Segment:  "1",
			Position: fmt.Sprintf("%d", line.ID),
			Quantity: fmt.Sprintf("%d", line.Quantity),
			Unit:     "PCE",
			Plant:    "1000",
			ISBN:     line.ISBN,
			Title:    line.BookTitle,
			Price:    fmt.Sprintf("%.2f", line.UnitPrice),
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}

	return xml.Header + string(out), nil
}
