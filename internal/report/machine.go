package report

// transition advances the state machine by one syntax category. It
// returns the next state, a terminal Error (ErrNone if the token was
// accepted without ending the parse), and reparse -- true when the
// same token must be reclassified and redispatched under the returned
// state without the tokenizer advancing to the next token.
//
// reportType is the report type determined so far; transition may
// return an updated value (e.g. once a token that is not a time span,
// following the report time, resolves an otherwise-unknown report as a
// METAR, or a time span resolves it as a TAF).
func transition(state State, cat SyntaxCategory, reportType ReportType) (next State, rt ReportType, err Error, reparse bool) {
	switch state {
	case StateReportTypeOrLocation:
		switch cat {
		case CatMetar, CatSpeci:
			return StateCorrection, ReportMetar, ErrNone, false
		case CatTaf:
			return StateCorrection, ReportTaf, ErrNone, false
		case CatLocation:
			return StateReportTime, reportType, ErrNone, false
		default:
			return StateError, reportType, ErrExpectedReportTypeOrLocation, false
		}

	case StateCorrection:
		switch cat {
		case CatAmd:
			if reportType != ReportTaf {
				return StateError, reportType, ErrAmdAllowedInTafOnly, false
			}
			return StateLocation, reportType, ErrNone, false
		case CatCor:
			return StateLocation, reportType, ErrNone, false
		case CatLocation:
			return StateReportTime, reportType, ErrNone, false
		default:
			return StateError, reportType, ErrExpectedLocation, false
		}

	case StateLocation:
		switch cat {
		case CatLocation:
			return StateReportTime, reportType, ErrNone, false
		default:
			return StateError, reportType, ErrExpectedLocation, false
		}

	case StateReportTime:
		switch cat {
		case CatReportTime:
			if reportType == ReportMetar {
				return StateBodyBeginMetar, reportType, ErrNone, false
			}
			return StateTimeSpan, reportType, ErrNone, false
		case CatTimeSpan:
			if reportType == ReportTaf {
				return StateBodyBeginTaf, reportType, ErrNone, false
			}
			return StateError, reportType, ErrExpectedReportTime, false
		case CatNil:
			return StateNil, reportType, ErrNone, false
		default:
			return StateError, reportType, ErrExpectedReportTime, false
		}

	case StateTimeSpan:
		switch cat {
		case CatTimeSpan:
			return StateBodyBeginTaf, ReportTaf, ErrNone, false
		case CatNil:
			return StateNil, reportType, ErrNone, false
		default:
			if reportType == ReportUnknown {
				return StateBodyBeginMetarRepeatParse, ReportMetar, ErrNone, true
			}
			return StateError, reportType, ErrExpectedTimeSpan, false
		}

	case StateBodyBeginMetar, StateBodyBeginMetarRepeatParse:
		// NIL is legal only as the very first body token.
		switch cat {
		case CatRmk:
			return StateRemarkMetar, reportType, ErrNone, false
		case CatNil:
			return StateNil, reportType, ErrNone, false
		case CatCnl:
			return StateError, reportType, ErrCnlAllowedInTafOnly, false
		case CatMaintenanceIndicator:
			return StateMaintenanceIndicator, reportType, ErrNone, false
		default:
			return StateBodyMetar, reportType, ErrNone, false
		}

	case StateBodyMetar:
		switch cat {
		case CatRmk:
			return StateRemarkMetar, reportType, ErrNone, false
		case CatNil:
			return StateError, reportType, ErrUnexpectedNilOrCnlInReportBody, false
		case CatCnl:
			return StateError, reportType, ErrCnlAllowedInTafOnly, false
		case CatMaintenanceIndicator:
			return StateMaintenanceIndicator, reportType, ErrNone, false
		default:
			return StateBodyMetar, reportType, ErrNone, false
		}

	case StateBodyBeginTaf:
		// NIL and CNL are legal only as the very first body token.
		switch cat {
		case CatRmk:
			return StateRemarkTaf, reportType, ErrNone, false
		case CatCnl:
			return StateCnl, reportType, ErrNone, false
		case CatNil:
			return StateNil, reportType, ErrNone, false
		case CatMaintenanceIndicator:
			return StateError, reportType, ErrMaintenanceIndicatorAllowedInMetarOnly, false
		default:
			return StateBodyTaf, reportType, ErrNone, false
		}

	case StateBodyTaf:
		switch cat {
		case CatRmk:
			return StateRemarkTaf, reportType, ErrNone, false
		case CatCnl, CatNil:
			return StateError, reportType, ErrUnexpectedNilOrCnlInReportBody, false
		case CatMaintenanceIndicator:
			return StateError, reportType, ErrMaintenanceIndicatorAllowedInMetarOnly, false
		default:
			return StateBodyTaf, reportType, ErrNone, false
		}

	case StateRemarkMetar:
		switch cat {
		case CatMaintenanceIndicator:
			return StateMaintenanceIndicator, reportType, ErrNone, false
		case CatNil:
			return StateError, reportType, ErrUnexpectedNilOrCnlInReportBody, false
		case CatCnl:
			return StateError, reportType, ErrCnlAllowedInTafOnly, false
		default:
			return StateRemarkMetar, reportType, ErrNone, false
		}

	case StateRemarkTaf:
		switch cat {
		case CatMaintenanceIndicator:
			return StateError, reportType, ErrMaintenanceIndicatorAllowedInMetarOnly, false
		case CatNil, CatCnl:
			return StateError, reportType, ErrUnexpectedNilOrCnlInReportBody, false
		default:
			return StateRemarkTaf, reportType, ErrNone, false
		}

	case StateMaintenanceIndicator:
		return StateError, reportType, ErrUnexpectedGroupAfterMaintenanceIndicator, false

	case StateNil:
		return StateError, reportType, ErrUnexpectedGroupAfterNil, false

	case StateCnl:
		return StateError, reportType, ErrUnexpectedGroupAfterCnl, false

	default:
		return StateError, reportType, ErrInternalParserState, false
	}
}
