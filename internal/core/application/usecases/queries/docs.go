// Package queries contains read operations. Order queries read the database
// directly with GORM raw SQL instead of loading aggregates; pricing, zone and
// location queries run against the in-memory domain services.
package queries
