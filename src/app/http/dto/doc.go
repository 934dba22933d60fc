// Package dto contains Data Transfer Objects for HTTP requests.
//
// Responses serialize domain.Item directly; its JSON shape
// ({"id","name","createdAt"}) is part of the public contract.
package dto
