package eligibility_test

import (
	"testing"

	"github.com/Htr33ml/CS25-2CIA/internal/domain/conscript"
	"github.com/Htr33ml/CS25-2CIA/internal/domain/eligibility"
	. "github.com/smartystreets/goconvey/convey"
)

// fit is a record that passes every gate.
func fit() conscript.Record {
	return conscript.Record{
		Name:            "Ana",
		HealthFit:       conscript.Yes,
		PhysicalTest:    conscript.Yes,
		Mention:         conscript.Excelente,
		Contraindicated: conscript.No,
		InstructionFit:  conscript.Yes,
		Obese:           conscript.No,
	}
}

func TestClassify(t *testing.T) {
	Convey("Given a record passing every gate", t, func() {
		v, reason := eligibility.Classify(fit())

		Convey("Then the verdict is Apto with no reason", func() {
			So(v, ShouldEqual, eligibility.Apto)
			So(reason, ShouldEqual, eligibility.ReasonNone)
		})

		Convey("And classification is deterministic", func() {
			v2, reason2 := eligibility.Classify(fit())
			So(v2, ShouldEqual, v)
			So(reason2, ShouldEqual, reason)
		})
	})

	// One case per gate, each with all earlier gates passing, pinning the
	// short-circuit priority order.
	Convey("Given records failing a single gate", t, func() {
		cases := []struct {
			name   string
			mutate func(*conscript.Record)
			reason eligibility.Reason
		}{
			{"health", func(r *conscript.Record) { r.HealthFit = conscript.No }, eligibility.ReasonHealth},
			{"physical test", func(r *conscript.Record) { r.PhysicalTest = conscript.No }, eligibility.ReasonPhysicalTest},
			{"interview", func(r *conscript.Record) { r.Mention = conscript.Insuficiente }, eligibility.ReasonInterview},
			{"contraindication", func(r *conscript.Record) { r.Contraindicated = conscript.Yes }, eligibility.ReasonContraindicated},
			{"instruction team", func(r *conscript.Record) { r.InstructionFit = conscript.No }, eligibility.ReasonInstructionTeam},
			{"obesity", func(r *conscript.Record) { r.Obese = conscript.Yes }, eligibility.ReasonObesity},
		}
		for _, tc := range cases {
			Convey("When only the "+tc.name+" gate fails", func() {
				r := fit()
				tc.mutate(&r)
				v, reason := eligibility.Classify(r)
				So(v, ShouldEqual, eligibility.Inapto)
				So(reason, ShouldEqual, tc.reason)
			})
		}
	})

	Convey("Given a record failing several gates", t, func() {
		r := fit()
		r.Obese = conscript.Yes
		r.HealthFit = conscript.No

		Convey("Then the earliest gate in priority order wins", func() {
			v, reason := eligibility.Classify(r)
			So(v, ShouldEqual, eligibility.Inapto)
			So(reason, ShouldEqual, eligibility.ReasonHealth)
		})
	})
}

func TestStatus(t *testing.T) {
	Convey("Given verdicts", t, func() {
		So(eligibility.Status(eligibility.Apto, eligibility.ReasonNone), ShouldEqual, "Apto")
		So(eligibility.Status(eligibility.Inapto, eligibility.ReasonObesity), ShouldEqual, "Inapto - Obesidade")
		So(eligibility.Status(eligibility.Inapto, eligibility.ReasonHealth), ShouldEqual, "Inapto - Saúde")
	})
}
