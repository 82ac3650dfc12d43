/*
Package tree implements the pure, recursive algorithms used to edit a page tree.

Every function takes an ordered sequence of nodes and returns a new sequence, never
modifying its input. Only the ancestors on the path to a changed node are rebuilt;
untouched subtrees are returned as the very same pointers, which lets callers detect
change cheaply. Functions that may leave the tree untouched also report whether
anything changed.
*/
package tree
