// Package crookedfinger is a client SDK for the Crooked Finger crochet
// assistant backend.
//
// The backend exposes a single GraphQL endpoint. [Client] bundles that
// API surface with two local subsystems: an attachment cache that turns
// pattern PDF URLs into local handles (TTL plus least-frequently-used
// eviction), and a compact state file holding the session token, the
// account profile, and a mirror of the conversation list for offline
// reads.
//
// # Quick Start
//
// Connect, sign in, and chat:
//
//	c, err := crookedfinger.NewClient("https://api.example.com/graphql",
//	    crookedfinger.WithStateFile(filepath.Join(home, ".crookedfinger", "state")),
//	)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	if _, err := c.Login(ctx, "maker@example.com", "secret"); err != nil {
//	    return err
//	}
//	reply, err := c.SendMessage(ctx, crookedfinger.Message{Text: "How do I start a magic ring?"})
//
// With a state file configured the session survives restarts; the next
// NewClient with the same path picks the token back up.
//
// # Attachments
//
// Use WithAttachmentDir to cache pattern PDFs and charts on disk:
//
//	c, err := crookedfinger.NewClient(endpoint,
//	    crookedfinger.WithStateFile(statePath),
//	    crookedfinger.WithAttachmentDir("/var/cache/crookedfinger"),
//	)
//
// Attachment resolves a URL through the cache, downloading on first
// use and answering from disk afterwards:
//
//	local := c.Attachment(ctx, pdfURL)
//
// On any failure Attachment returns the URL unchanged, so callers can
// always hand the result to whatever displays it. PreloadAttachments
// warms the cache in the background for URLs that are about to be
// shown.
//
// # Degraded operation
//
// The SDK keeps working when the backend does not. Conversations falls
// back to the locally mirrored list on transport failures, and
// TranslatePattern degrades to a built-in abbreviation expansion when
// the assistant cannot be reached. Authentication failures are never
// masked; they surface as [ErrUnauthenticated].
//
// Everything the facade does not wrap directly is reachable through
// [Client.API].
package crookedfinger
