// Package scaffold renders template trees into new project directories.
//
// A template tree is a directory of files whose relative paths and contents
// may both contain text/template placeholders. The generator walks the tree,
// renders each path against the run's variable set, renders the contents of
// files carrying the .tmpl suffix (stripping the suffix from the result), and
// copies every other file byte-for-byte. Rendered paths that begin with the
// project name lose that leading segment, since the destination directory
// itself represents the project root.
//
// # Staging
//
// Output is assembled in a private temporary directory and copied into the
// destination only after the whole tree rendered successfully. A run that
// fails while rendering therefore never mutates the destination, and the
// staging directory is removed on every exit path. The final copy into the
// destination is itself file-by-file with no rollback; a failure during that
// last step can leave a partial tree behind.
//
// # Variables
//
// Variables are plain strings. The reserved project_name and
// project_directory variables always reflect the Context fields; any extra
// variables (version strings and the like) merge in below them. Referencing
// an undefined variable is a rendering error, not a silent empty string.
//
// # Usage
//
//	gen := scaffold.New(scaffold.GeneratorParams{
//		Templates: os.DirFS("./templates/webapp"),
//		Name:      "webapp",
//		Logger:    logger,
//	})
//
//	err := gen.Generate(scaffold.NewContext("demo", "/src/demo", map[string]string{
//		"go_version": "1.24",
//	}))
//	if err != nil {
//		log.Fatal(err)
//	}
package scaffold
