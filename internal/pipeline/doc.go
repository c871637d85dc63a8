// Package pipeline turns a reviewed batch into its output folder.
//
// Finalize names every item of a review session in display order with one
// naming.Builder, routes each file by its verdict, copies the files on a
// bounded worker pool and writes the mapping and stats files. Apply replays
// an existing mapping file against its source folder. Both share the same
// plan/execute split: nothing touches the disk until every name is known.
package pipeline
