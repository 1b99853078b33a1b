package main

// @title Inventory Ledger API
// @version 1.0
// @description Stock levels, movements and the transaction ledger for products, materials and tools

// @contact.name API Support

// @host localhost:8082
// @BasePath /

// @tag.name Inventory
// @tag.description Inventory ledger endpoints

// @tag.name Health
// @tag.description Health check endpoints

// @tag.name Locations
// @tag.description Storage location registry
