// Package models contains GORM persistence models that map to database tables.
// Domain types carry no ORM tags; each model converts with ToDomain and FromDomain.
//
// Tables:
//   - orders, order_items: order.go
//   - products: catalog.go
//   - expenses: finance.go
//   - store_config: settings.go
package models
