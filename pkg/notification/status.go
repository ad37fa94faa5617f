package notification

// AggregateStatus folds per-channel delivery states into one overall status:
// sent everywhere is sent, failed everywhere is failed, anything else
// (including still-pending entries) is partial. An empty channel set is
// partial: the notification was created with no allowed channels and nothing
// was ever dispatched.
func AggregateStatus(channels map[string]ChannelState) Status {
	if len(channels) == 0 {
		return StatusPartial
	}

	allSent, allFailed := true, true
	for _, state := range channels {
		if state.Status != DeliverySent {
			allSent = false
		}
		if state.Status != DeliveryFailed {
			allFailed = false
		}
	}

	switch {
	case allSent:
		return StatusSent
	case allFailed:
		return StatusFailed
	default:
		return StatusPartial
	}
}
