package gtfparse_test

import (
	"fmt"
	"strings"

	"github.com/openvax/gtfparse"
)

func ExampleReadGTFReader() {
	gtf := `1	havana	exon	11869	12227	.	+	.	gene_id "ENSG00000223972"; gene_name "DDX11L1";
1	havana	exon	12613	12721	.	+	.	gene_id "ENSG00000223972"; gene_name "DDX11L1";
`

	t, err := gtfparse.ReadGTFReader(strings.NewReader(gtf))
	if err != nil {
		panic(err)
	}

	names, _ := t.Strings("gene_name")
	fmt.Println(t.NumRows(), "rows")
	fmt.Println("gene_name:", names[0])
	// Output:
	// 2 rows
	// gene_name: DDX11L1
}

func ExampleCreateMissingFeatures() {
	gtf := `18	havana	exon	100	200	.	+	.	gene_id "G1";
18	havana	exon	150	300	.	+	.	gene_id "G1";
`

	t, err := gtfparse.ReadGTFReader(strings.NewReader(gtf))
	if err != nil {
		panic(err)
	}

	extended, err := gtfparse.CreateMissingFeatures(t, map[string]string{"gene": "gene_id"})
	if err != nil {
		panic(err)
	}

	features, _ := extended.Strings("feature")
	start, _ := extended.Column("start")
	end, _ := extended.Column("end")
	last := extended.NumRows() - 1
	fmt.Printf("%s %v-%v\n", features[last], start.Value(last), end.Value(last))
	// Output:
	// gene 100-300
}
