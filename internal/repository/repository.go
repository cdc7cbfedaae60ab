// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch and persist data,
// abstracting SQL logic away from the service layer. Errors are returned
// wrapped so that sqlerr.HandleError can classify them.
package repository
