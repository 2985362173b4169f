// Package collection holds the collection domain: free-form item records,
// user-defined categories describing which fields an item of that kind
// carries, and the helpers the API and the table view share (category
// membership, column discovery, value coercion).
//
// Items are deliberately schemaless. A category never constrains which keys
// an item may carry; it only drives the entry form and the membership
// heuristic used when filtering the table.
package collection
