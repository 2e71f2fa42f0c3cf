// SPDX-License-Identifier: EPL-2.0

// Package dataset turns directories of labelled recordings into image files
// plus metadata tables ready for training.
//
// A Builder walks each input directory, renders every supported file
// through a pdspec.Pipeline on a bounded worker pool and returns one Record
// per written image. Files that fail to load are logged and reported as
// Skip entries; they never stop the batch. Rendering goes through a Cache,
// so a rerun over the same output directory reuses earlier images.
//
// Split partitions records into train, validation and test sets, stratified
// by label, keeping augmented copies with their original. WriteSplits
// stores the partitions as CSV or Parquet.
package dataset
