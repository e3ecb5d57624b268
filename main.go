package main

import (
	"github.com/lehigh-university-libraries/affilnet/cmd"

	// Register format plugins
	_ "github.com/lehigh-university-libraries/affilnet/format/bibtex"
	_ "github.com/lehigh-university-libraries/affilnet/format/csv"
	_ "github.com/lehigh-university-libraries/affilnet/format/geojson"
	_ "github.com/lehigh-university-libraries/affilnet/format/jsonfmt"
	_ "github.com/lehigh-university-libraries/affilnet/format/table"
	_ "github.com/lehigh-university-libraries/affilnet/format/yamlfmt"
)

func main() {
	cmd.Execute()
}
