// Package siren builds documents in the Siren hypermedia format:
// https://github.com/kevinswiber/siren
//
// Documents are assembled from values using chained With methods. Every method returns a new
// value and leaves its receiver untouched, so partially built values can be shared as templates:
//
//	doc := siren.NewDocument(order).
//	    WithClass("order").
//	    WithEmbeddedLink(siren.NewLink("http://api.x.io/orders/42/items").
//	        WithClass("items").
//	        WithRel("http://x.io/rels/order-items")).
//	    WithLink(siren.NewLink("http://api.x.io/orders/42").WithRel(values.RelSelf))
//
// The sirenhttp, sirengin, sirenecho and sirenws packages write documents to their respective
// transports with the Content-Type set to MediaType.
package siren

import (
	jsoniter "github.com/json-iterator/go"
)

// MediaType is the media type of every Siren document written by this package.
const MediaType = "application/vnd.siren+json"

// codec behaves like encoding/json, including its rejection of NaN, infinities and unsupported map
// key types, except that &, < and > are written as-is rather than escaped.
var codec = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// appendOne appends v to a copy of s. Two values built from the same base never share a backing
// array.
func appendOne[E any](s []E, v E) []E {
	return append(s[:len(s):len(s)], v)
}

func stringPtr(s string) *string {
	return &s
}
