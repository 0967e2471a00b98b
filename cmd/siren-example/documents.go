package main

import (
	"fmt"
	"strconv"

	siren "github.com/ccbrown/siren-fu"
	"github.com/ccbrown/siren-fu/values"
)

type OrderProperties struct {
	OrderNumber int    `json:"orderNumber"`
	ItemCount   int    `json:"itemCount"`
	Status      string `json:"status"`
}

type CustomerProperties struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"name"`
}

type CollectionProperties struct {
	Count int `json:"count"`
}

type ErrorProperties struct {
	Message string `json:"message"`
}

func (a *API) orderURL(number int) string {
	return fmt.Sprintf("%v/orders/%v", a.BaseURL, number)
}

func orderProperties(order Order) OrderProperties {
	return OrderProperties{
		OrderNumber: order.Number,
		ItemCount:   order.ItemCount,
		Status:      order.Status,
	}
}

// OrderDocument describes an order along with its customer, its items collection, and the action
// for adding items to it.
func (a *API) OrderDocument(order Order) siren.Document[OrderProperties] {
	self := a.orderURL(order.Number)
	prev, next := a.Store.Neighbors(order.Number)

	return siren.NewDocument(orderProperties(order)).
		WithClass("order").
		WithEmbeddedLink(siren.NewLink(self+"/items").
			WithClass("items").
			WithClass("collection").
			WithRel("http://x.io/rels/order-items")).
		WithEmbeddedRepresentation(siren.NewEmbeddedRepresentation(CustomerProperties{
			CustomerID: order.CustomerID,
			Name:       order.CustomerName,
		}).
			WithClass("info").
			WithClass("customer").
			WithRel("http://x.io/rels/customer").
			WithLink(siren.NewLink(a.BaseURL + "/customers/" + order.CustomerID).WithRel(values.RelSelf))).
		WithAction(siren.NewAction("add-item", self+"/items").
			WithTitle("Add Item").
			WithMethod(values.MethodPost).
			WithType("application/x-www-form-urlencoded").
			WithField(siren.NewField("orderNumber").WithType(values.FieldTypeHidden).WithValue(strconv.Itoa(order.Number))).
			WithField(siren.NewField("productCode").WithType(values.FieldTypeText)).
			WithField(siren.NewField("quantity").WithType(values.FieldTypeNumber))).
		WithLink(siren.NewLink(self).WithRel(values.RelSelf)).
		With(func(d siren.Document[OrderProperties]) siren.Document[OrderProperties] {
			if prev != 0 {
				d = d.WithLink(siren.NewLink(a.orderURL(prev)).WithRel(values.RelPrevious))
			}
			if next != 0 {
				d = d.WithLink(siren.NewLink(a.orderURL(next)).WithRel(values.RelNext))
			}
			return d
		})
}

// OrdersDocument describes a page of the order collection. Each order is embedded with its own
// self link.
func (a *API) OrdersDocument(orders []Order, links []siren.Link) siren.Document[CollectionProperties] {
	doc := siren.NewDocument(CollectionProperties{
		Count: len(orders),
	}).WithClass("orders").WithClass("collection")
	for _, order := range orders {
		doc = doc.WithEmbeddedRepresentation(siren.NewEmbeddedRepresentation(orderProperties(order)).
			WithClass("order").
			WithRel(values.RelItem).
			WithLink(siren.NewLink(a.orderURL(order.Number)).WithRel(values.RelSelf)))
	}
	for _, link := range links {
		doc = doc.WithLink(link)
	}
	return doc
}

func errorResponse(status int, message string) siren.Response[ErrorProperties] {
	return siren.NewDocument(ErrorProperties{
		Message: message,
	}).WithClass("error").Response().WithStatusCode(status)
}
