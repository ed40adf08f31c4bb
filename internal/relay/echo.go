package relay

// Echo returns a deterministic reply without calling any downstream. It backs
// the local test endpoint so the pipeline can be exercised offline.
func Echo(input string) Reply {
	reason := "completed"
	return Reply{
		BotReply:  "Echo: " + input,
		MessageID: 0,
		End:       true,
		EndReason: &reason,
		TimeTaken: 0,
	}
}
