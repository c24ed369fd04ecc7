// Package blob implements the LERC blob inspector and codec adapter.
//
// A Decoder turns blob bytes into metadata and pixel values; an Encoder turns
// a raster back into blob bytes. Both delegate the codec work to a
// native.Library and own only the buffer marshaling around it.
//
// # Inspection
//
// Inspect reads the blob header without decoding pixels and returns two
// positional structures:
//
//	BlobInfo:  version, data_type, n_values_per_pixel, n_cols, n_rows,
//	           n_bands, n_valid_pixels, blob_size, n_masks
//	DataRange: z_min, z_max, max_z_err_used
//
// Buffers shorter than section.MinBlobSize never reach the library.
//
// # Decoding
//
// Decode inspects the blob, checks that blob_size equals the buffer length,
// allocates exactly n_cols*n_rows*n_values_per_pixel*n_bands float64 values
// and n_cols*n_rows*n_masks mask bytes, and decodes into them. Values are
// always float64 regardless of the stored element type.
//
//	dec, err := blob.NewDecoder()
//	if err != nil {
//	    return err
//	}
//	ds, err := dec.Decode(buf)
//	if err != nil {
//	    return err
//	}
//	v := ds.At(0, row, col)
//
// # Encoding
//
// Encode marshals the raster into the configured element type (Float by
// default), asks the library for the required capacity, allocates exactly that
// much, encodes, and truncates to the bytes written.
//
//	enc, err := blob.NewEncoder(blob.WithDataType(format.DataTypeFloat))
//	if err != nil {
//	    return err
//	}
//	out, err := enc.Encode(values, rows, cols, 1, 0.01)
//
// # Errors
//
// Library failures are returned as *errs.StatusError carrying the library's
// status code; use errors.Is with errs.ErrHeaderParse, errs.ErrPixelDecode,
// errs.ErrSizeProbe or errs.ErrEncode to tell the failing step apart. No
// partial Dataset is ever returned with an error.
//
// # Library Selection
//
// With cgo and the lerc build tag the default library is liblerc through
// native.CLibrary; otherwise it is the pure-Go lerc2.Codec. WithLibrary
// overrides either.
//
// # Thread Safety
//
// Decoder and Encoder are immutable after construction and safe for concurrent
// use. WithSerializedCalls routes every library call through one process-wide
// lock for codec builds that are not re-entrant.
package blob
