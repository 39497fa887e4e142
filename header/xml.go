package header

import "github.com/qvdfile/qvd/format"

// The structs below are the literal XML shape (exported fields named
// to match the element names QlikView emits/reads); TableHeader and
// FieldHeader are the package's public, XML-agnostic model. xmlHeader
// and its conversions are the only place that couples the two.

type xmlNumberFormat struct {
	Type    string `xml:"Type"`
	NDec    int    `xml:"nDec"`
	UseThou int    `xml:"UseThou"`
	Fmt     string `xml:"Fmt"`
	Dec     string `xml:"Dec"`
	Thou    string `xml:"Thou"`
}

type xmlTags struct {
	String []string `xml:"String"`
}

type xmlField struct {
	FieldName    string          `xml:"FieldName"`
	BitOffset    int             `xml:"BitOffset"`
	BitWidth     int             `xml:"BitWidth"`
	Bias         int             `xml:"Bias"`
	NumberFormat xmlNumberFormat `xml:"NumberFormat"`
	Tags         *xmlTags        `xml:"Tags,omitempty"`
	Offset       int             `xml:"Offset"`
	Length       int             `xml:"Length"`
}

type xmlFields struct {
	Field []xmlField `xml:"QvdFieldHeader"`
}

type xmlHeader struct {
	TableName      string    `xml:"TableName"`
	RecordByteSize int       `xml:"RecordByteSize"`
	NoOfRecords    int       `xml:"NoOfRecords"`
	Offset         int       `xml:"Offset"`
	Length         int       `xml:"Length"`
	Fields         xmlFields `xml:"Fields"`
}

func toXML(h *TableHeader) xmlHeader {
	x := xmlHeader{
		TableName:      h.TableName,
		RecordByteSize: h.RecordByteSize,
		NoOfRecords:    h.NoOfRecords,
		Offset:         h.Offset,
		Length:         h.Length,
	}
	x.Fields.Field = make([]xmlField, len(h.Fields))
	for i, f := range h.Fields {
		xf := xmlField{
			FieldName: f.FieldName,
			BitOffset: f.BitOffset,
			BitWidth:  f.BitWidth,
			Bias:      f.Bias,
			NumberFormat: xmlNumberFormat{
				Type:    f.NumberFormat.Kind.String(),
				NDec:    f.NumberFormat.NDec,
				UseThou: boolToInt(f.NumberFormat.UseThou),
				Fmt:     f.NumberFormat.Fmt,
				Dec:     f.NumberFormat.Dec,
				Thou:    f.NumberFormat.Thou,
			},
			Offset: f.Offset,
			Length: f.Length,
		}
		if len(f.Tags) > 0 {
			tags := &xmlTags{String: make([]string, len(f.Tags))}
			for j, t := range f.Tags {
				tags.String[j] = string(t)
			}
			xf.Tags = tags
		}
		x.Fields.Field[i] = xf
	}

	return x
}

func fromXML(x xmlHeader) *TableHeader {
	h := &TableHeader{
		TableName:      x.TableName,
		RecordByteSize: x.RecordByteSize,
		NoOfRecords:    x.NoOfRecords,
		Offset:         x.Offset,
		Length:         x.Length,
		Fields:         make([]FieldHeader, len(x.Fields.Field)),
	}
	for i, xf := range x.Fields.Field {
		f := FieldHeader{
			FieldName: xf.FieldName,
			BitOffset: xf.BitOffset,
			BitWidth:  xf.BitWidth,
			Bias:      xf.Bias,
			NumberFormat: format.NumberFormat{
				Kind:    format.ParseKind(xf.NumberFormat.Type),
				NDec:    xf.NumberFormat.NDec,
				UseThou: xf.NumberFormat.UseThou != 0,
				Fmt:     xf.NumberFormat.Fmt,
				Dec:     xf.NumberFormat.Dec,
				Thou:    xf.NumberFormat.Thou,
			},
			Offset: xf.Offset,
			Length: xf.Length,
		}
		if xf.Tags != nil {
			f.Tags = make([]format.Tag, len(xf.Tags.String))
			for j, s := range xf.Tags.String {
				f.Tags[j] = format.Tag(s)
			}
		}
		h.Fields[i] = f
	}

	return h
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
