// Package serializer writes command output in JSON, YAML or table format.
//
// JSON and YAML are indented encodings of the value. The table format calls
// RenderTable when the value implements TableRenderer and otherwise prints
// the value flattened into sorted FIELD/VALUE rows:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatTable, outputPath)
//	defer w.Close()
//	if err := w.Serialize(ctx, report); err != nil {
//		return err
//	}
package serializer
