// Package richtext binds UI controls to an editor state held by a host store.
//
// Every mutating call goes through Store.Update and reads the state passed to
// the update function, so bindings created before the latest selection change
// still act on the live selection. Operations that do not apply to the
// current selection leave the state untouched; none of them return errors.
package richtext
