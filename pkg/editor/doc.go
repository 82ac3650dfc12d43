/*
Package editor implements the editing session of a site document.

A Session owns the current document and its undo/redo timeline. Every mutation builds a
new *domain.Site value, lets the globals engine resynchronize Headers and Footers, and
commits the result as one history entry. Mutations that change nothing are not recorded.

Requests that reference a missing node or page are silent no-ops. Illegal structural
requests (a second Header, copying a Footer, parenting under a Paragraph) are rejected
with a sentinel error from pkg/domain and leave the session untouched.

A Session is not safe for concurrent use. Serve concurrent callers through
session.Manager, which serializes access per session id.
*/
package editor
