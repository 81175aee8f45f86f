package gtfparse

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/openvax/gtfparse/table"
)

type missingOptions struct {
	// extraColumns, when set for a feature, restricts which non-special
	// columns are propagated into reconstructed rows; everything else
	// stays null.
	extraColumns map[string]map[string]struct{}
	logger       *Logger
}

// MissingFeatureOption configures CreateMissingFeatures.
type MissingFeatureOption func(*missingOptions)

// WithExtraColumns restricts the columns propagated into rows
// reconstructed for feature to the given names (besides the special
// seqname/start/end/feature columns, which are always derived).
func WithExtraColumns(feature string, columns ...string) MissingFeatureOption {
	return func(o *missingOptions) {
		if o.extraColumns == nil {
			o.extraColumns = make(map[string]map[string]struct{})
		}
		set := make(map[string]struct{}, len(columns))
		for _, c := range columns {
			set[c] = struct{}{}
		}
		o.extraColumns[feature] = set
	}
}

// WithMissingFeatureLogger configures structured logging for the
// reconstruction pass.
func WithMissingFeatureLogger(l *Logger) MissingFeatureOption {
	return func(o *missingOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// CreateMissingFeatures reconstructs rows for feature types absent
// from a GTF. Some files carry only exon and CDS records but annotate
// them with gene_id and transcript_id, which is enough to rebuild the
// gene and transcript rows.
//
// uniqueKeys maps each synthetic feature name to the column whose
// values identify its instances, e.g. {"gene": "gene_id"}. For every
// distinct key value, one row is appended with start = group minimum,
// end = group maximum, seqname taken from the group's first member
// (groups are assumed single-chromosome, not re-validated), and
// feature = the synthetic name. Every other column keeps a group's
// value only when all of its populated cells agree; otherwise the
// cell is null. Rows whose key cell is null are excluded from
// grouping. The input table is returned extended with the new rows;
// original rows are never modified.
func CreateMissingFeatures(t *table.Table, uniqueKeys map[string]string, opts ...MissingFeatureOption) (*table.Table, error) {
	o := missingOptions{logger: NoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	names := t.Names()
	out := table.New()
	for _, name := range names {
		col, _ := t.Column(name)
		if err := out.AddColumn(name, col.Clone()); err != nil {
			return nil, err
		}
	}

	featureCol, ok := t.Strings("feature")
	if !ok {
		return nil, fmt.Errorf("create missing features: table has no feature column")
	}
	existing := make(map[string]struct{}, 8)
	for _, f := range featureCol {
		existing[f] = struct{}{}
	}

	// Deterministic feature order.
	featureNames := make([]string, 0, len(uniqueKeys))
	for name := range uniqueKeys {
		featureNames = append(featureNames, name)
	}
	sort.Strings(featureNames)

	for _, featureName := range featureNames {
		keyColumn := uniqueKeys[featureName]
		if _, ok := existing[featureName]; ok {
			o.logger.Warn("feature already exists in GTF data",
				"feature", featureName,
			)
		}

		keyCol, ok := t.Column(keyColumn)
		if !ok {
			return nil, fmt.Errorf("create missing features: no column %q to group %q by",
				keyColumn, featureName)
		}

		groups, order := groupRows(keyCol)
		o.logger.LogReconstruct(featureName, len(order))

		restrict := o.extraColumns[featureName]
		for _, key := range order {
			if err := appendGroupRow(out, t, featureName, groups[key], restrict); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// groupRows buckets row indices by the key column's cell value,
// excluding null keys. Groups come back in sorted key order.
func groupRows(keyCol table.Column) (map[string][]int, []string) {
	groups := make(map[string][]int)
	for i := 0; i < keyCol.Len(); i++ {
		key, ok := keyCol.Cell(i)
		if !ok {
			continue
		}
		groups[key] = append(groups[key], i)
	}
	order := make([]string, 0, len(groups))
	for key := range groups {
		order = append(order, key)
	}
	sort.Strings(order)
	return groups, order
}

func appendGroupRow(out, src *table.Table, featureName string, rows []int, restrict map[string]struct{}) error {
	for _, name := range src.Names() {
		srcCol, _ := src.Column(name)
		dstCol, _ := out.Column(name)

		switch name {
		case "feature":
			if err := dstCol.Append(featureName); err != nil {
				return err
			}
		case "seqname":
			if err := dstCol.Append(srcCol.Value(rows[0])); err != nil {
				return err
			}
		case "start":
			minStart, err := coordinate(srcCol, name, rows[0])
			if err != nil {
				return err
			}
			for _, r := range rows[1:] {
				v, err := coordinate(srcCol, name, r)
				if err != nil {
					return err
				}
				if v < minStart {
					minStart = v
				}
			}
			if err := dstCol.Append(minStart); err != nil {
				return err
			}
		case "end":
			maxEnd, err := coordinate(srcCol, name, rows[0])
			if err != nil {
				return err
			}
			for _, r := range rows[1:] {
				v, err := coordinate(srcCol, name, r)
				if err != nil {
					return err
				}
				if v > maxEnd {
					maxEnd = v
				}
			}
			if err := dstCol.Append(maxEnd); err != nil {
				return err
			}
		default:
			if restrict != nil {
				if _, keep := restrict[name]; !keep {
					dstCol.AppendNull()
					continue
				}
			}
			if v, unanimous := unanimousValue(srcCol, rows); unanimous {
				if err := dstCol.Append(v); err != nil {
					return err
				}
			} else {
				dstCol.AppendNull()
			}
		}
	}
	return nil
}

// coordinate reads an integer coordinate cell. Column converters may
// have rewritten start/end into generic columns, so int and int64 are
// both accepted; anything else means the coordinates are no longer
// usable for span arithmetic.
func coordinate(col table.Column, name string, row int) (int64, error) {
	switch v := col.Value(row).(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("create missing features: column %q row %d holds %T, not an integer coordinate",
			name, row, v)
	}
}

// unanimousValue returns the single value shared by every populated
// cell of col across rows, or false when the populated cells disagree
// or are all null. Converted columns may hold uncomparable values
// such as slices, hence reflect.DeepEqual instead of ==.
func unanimousValue(col table.Column, rows []int) (any, bool) {
	var (
		value any
		seen  bool
	)
	for _, r := range rows {
		v := col.Value(r)
		if v == nil {
			continue
		}
		if !seen {
			value = v
			seen = true
			continue
		}
		if !reflect.DeepEqual(v, value) {
			return nil, false
		}
	}
	return value, seen
}
